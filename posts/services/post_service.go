// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"

	communityRepository "github.com/crimsonlab/crimson/communities/repository"
	"github.com/crimsonlab/crimson/internal/cache"
	"github.com/crimsonlab/crimson/internal/localcache"
	"github.com/crimsonlab/crimson/internal/pkg/log"
	postsErrors "github.com/crimsonlab/crimson/posts/errors"
	"github.com/crimsonlab/crimson/posts/models"
	"github.com/crimsonlab/crimson/posts/repository"
)

const (
	maxTitleLength = 300
	maxBodyLength  = 40000

	// listCacheTTL bounds staleness of the read-through list cache.
	// Invalidation on write is best-effort, the TTL is the backstop.
	listCacheTTL = 30 * time.Second

	defaultPageSize = 10
)

// PostService defines the interface for post operations
type PostService interface {
	// CreatePost inserts a post into a community and shows it at the
	// top of the cached feed.
	CreatePost(ctx context.Context, userID uuid.UUID, displayName string, communityID uuid.UUID, title, body, imageURL string) (*models.Post, error)

	// GetPost retrieves a post and caches it as the selected one.
	GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)

	// GetCommunityPosts retrieves a community's posts, newest first,
	// through the read-through list cache.
	GetCommunityPosts(ctx context.Context, communityID uuid.UUID, limit, offset int) ([]*models.Post, error)

	// GetRecentPosts retrieves the newest posts across communities,
	// through the read-through list cache.
	GetRecentPosts(ctx context.Context, limit, offset int) ([]*models.Post, error)

	// DeletePost removes a post. Only the owner may delete it.
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
}

// postService implements the PostService interface
type postService struct {
	repo          repository.PostRepository
	communityRepo communityRepository.CommunityRepository
	listCache     cache.Cache
	local         *localcache.Store
}

// NewPostService creates a new instance of the post service. listCache
// may be nil to disable the read-through layer.
func NewPostService(repo repository.PostRepository, communityRepo communityRepository.CommunityRepository, listCache cache.Cache, local *localcache.Store) PostService {
	return &postService{
		repo:          repo,
		communityRepo: communityRepo,
		listCache:     listCache,
		local:         local,
	}
}

// CreatePost inserts a post into a community
func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, displayName string, communityID uuid.UUID, title, body, imageURL string) (*models.Post, error) {
	if userID == uuid.Nil {
		return nil, postsErrors.ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", postsErrors.ErrInvalidPostData, maxTitleLength)
	}
	if len(body) > maxBodyLength {
		return nil, fmt.Errorf("%w: body too long", postsErrors.ErrInvalidPostData)
	}

	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, postsErrors.ErrCommunityNotFound
	}

	postID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post ID: %w", err)
	}

	post := &models.Post{
		ObjectId:         postID,
		CommunityId:      communityID,
		OwnerUserId:      userID,
		OwnerDisplayName: displayName,
		Title:            title,
		Body:             body,
		ImageURL:         imageURL,
		CommunityImage:   community.ImageURL,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.local.AddPost(post)
	s.invalidateLists(ctx, communityID)

	return post, nil
}

// GetPost retrieves a post and caches it as the selected one
func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postsErrors.ErrPostNotFound
		}
		return nil, err
	}

	s.local.SelectPost(post)
	return post, nil
}

// GetCommunityPosts retrieves a community's posts, newest first
func (s *postService) GetCommunityPosts(ctx context.Context, communityID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	key := communityListKey(communityID, limit, offset)

	if posts, ok := s.cachedList(ctx, key); ok {
		s.local.SetPosts(posts)
		return posts, nil
	}

	posts, err := s.repo.FindByCommunity(ctx, communityID, limit, offset)
	if err != nil {
		return nil, err
	}

	s.storeList(ctx, key, posts)
	s.local.SetPosts(posts)
	return posts, nil
}

// GetRecentPosts retrieves the newest posts across communities
func (s *postService) GetRecentPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	key := recentListKey(limit, offset)

	if posts, ok := s.cachedList(ctx, key); ok {
		s.local.SetPosts(posts)
		return posts, nil
	}

	posts, err := s.repo.FindRecent(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	s.storeList(ctx, key, posts)
	s.local.SetPosts(posts)
	return posts, nil
}

// DeletePost removes a post
func (s *postService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	if userID == uuid.Nil {
		return postsErrors.ErrUnauthenticated
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return postsErrors.ErrPostNotFound
		}
		return err
	}
	if post.OwnerUserId != userID {
		return postsErrors.ErrNotPostOwner
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	s.local.RemovePost(postID)
	s.invalidateLists(ctx, post.CommunityId)

	return nil
}

// --- read-through list cache ---

func communityListKey(communityID uuid.UUID, limit, offset int) string {
	return fmt.Sprintf("posts:community:%s:%d:%d", communityID, limit, offset)
}

func recentListKey(limit, offset int) string {
	return fmt.Sprintf("posts:recent:%d:%d", limit, offset)
}

// cachedList returns a cached page if present and well-formed.
func (s *postService) cachedList(ctx context.Context, key string) ([]*models.Post, bool) {
	if s.listCache == nil {
		return nil, false
	}

	raw, err := s.listCache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			log.Warn("list cache read failed: %v", err)
		}
		return nil, false
	}

	var posts []*models.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		log.Warn("list cache entry corrupt, dropping key %s: %v", key, err)
		_ = s.listCache.Delete(ctx, key)
		return nil, false
	}

	return posts, true
}

// storeList caches a page, best-effort.
func (s *postService) storeList(ctx context.Context, key string, posts []*models.Post) {
	if s.listCache == nil {
		return
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := s.listCache.Set(ctx, key, raw, listCacheTTL); err != nil {
		log.Warn("list cache write failed: %v", err)
	}
}

// invalidateLists drops the first pages after a write. Deeper pages age
// out through the TTL.
func (s *postService) invalidateLists(ctx context.Context, communityID uuid.UUID) {
	if s.listCache == nil {
		return
	}

	_ = s.listCache.Delete(ctx, communityListKey(communityID, defaultPageSize, 0))
	_ = s.listCache.Delete(ctx, recentListKey(defaultPageSize, 0))
}
