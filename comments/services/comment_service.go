// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"

	commentsErrors "github.com/crimsonlab/crimson/comments/errors"
	"github.com/crimsonlab/crimson/comments/models"
	"github.com/crimsonlab/crimson/comments/repository"
	"github.com/crimsonlab/crimson/internal/localcache"
	postRepository "github.com/crimsonlab/crimson/posts/repository"
)

const maxCommentLength = 10000

// CommentService defines the interface for comment operations
type CommentService interface {
	// CreateComment inserts a comment and bumps the owning post's
	// comment counter in the same transaction.
	CreateComment(ctx context.Context, userID uuid.UUID, displayName string, postID uuid.UUID, text string) (*models.Comment, error)

	// GetComments retrieves a post's comments, newest first.
	GetComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	// DeleteComment removes a comment and drops the counter in the same
	// transaction. Only the owner may delete it.
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}

// commentService implements the CommentService interface
type commentService struct {
	repo     repository.CommentRepository
	postRepo postRepository.PostRepository
	cache    *localcache.Store
}

// NewCommentService creates a new instance of the comment service
func NewCommentService(repo repository.CommentRepository, postRepo postRepository.PostRepository, cache *localcache.Store) CommentService {
	return &commentService{
		repo:     repo,
		postRepo: postRepo,
		cache:    cache,
	}
}

// CreateComment inserts a comment. The record and the post's counter
// move in one transaction; the cached counter follows only after the
// store commits.
func (s *commentService) CreateComment(ctx context.Context, userID uuid.UUID, displayName string, postID uuid.UUID, text string) (*models.Comment, error) {
	if userID == uuid.Nil {
		return nil, commentsErrors.ErrUnauthenticated
	}

	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLength {
		return nil, fmt.Errorf("%w: text must be 1-%d characters", commentsErrors.ErrInvalidCommentData, maxCommentLength)
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	comment := &models.Comment{
		ObjectId:         commentID,
		PostId:           postID,
		OwnerUserId:      userID,
		OwnerDisplayName: displayName,
		Text:             text,
	}

	err = s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, comment); err != nil {
			return err
		}
		return s.postRepo.IncrementCommentCount(txCtx, postID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.cache.ApplyCommentCountDelta(postID, 1)
	return comment, nil
}

// GetComments retrieves a post's comments, newest first
func (s *commentService) GetComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	return s.repo.FindByPost(ctx, postID, limit, offset)
}

// DeleteComment removes a comment and drops the post's counter
func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	if userID == uuid.Nil {
		return commentsErrors.ErrUnauthenticated
	}

	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return commentsErrors.ErrCommentNotFound
	}
	if comment.OwnerUserId != userID {
		return commentsErrors.ErrNotCommentOwner
	}

	err = s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, commentID); err != nil {
			return err
		}
		return s.postRepo.IncrementCommentCount(txCtx, comment.PostId, -1)
	})
	if err != nil {
		return err
	}

	s.cache.ApplyCommentCountDelta(comment.PostId, -1)
	return nil
}
