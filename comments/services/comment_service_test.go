// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentsErrors "github.com/crimsonlab/crimson/comments/errors"
	"github.com/crimsonlab/crimson/comments/models"
	"github.com/crimsonlab/crimson/internal/localcache"
	postModels "github.com/crimsonlab/crimson/posts/models"
)

type commentFixture struct {
	repo     *MockCommentRepository
	postRepo *MockPostRepositoryForComments
	cache    *localcache.Store
	service  CommentService
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		repo:     new(MockCommentRepository),
		postRepo: new(MockPostRepositoryForComments),
		cache:    localcache.NewStore(),
	}
	f.service = NewCommentService(f.repo, f.postRepo, f.cache)
	return f
}

func (f *commentFixture) expectTransaction(ctx context.Context) {
	f.postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	t.Run("creates the comment and bumps the cached counter", func(t *testing.T) {
		f := newCommentFixture()
		f.cache.SetPosts([]*postModels.Post{{
			ObjectId: postID, CommentCount: 2, CreatedAt: time.Now(),
		}})
		f.expectTransaction(ctx)

		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.PostId == postID && c.OwnerUserId == userID && c.Text == "nice post"
		})).Return(nil)
		f.postRepo.On("IncrementCommentCount", mock.Anything, postID, 1).Return(nil)

		comment, err := f.service.CreateComment(ctx, userID, "gopher", postID, "nice post")
		require.NoError(t, err)
		require.NotNil(t, comment)

		assert.Equal(t, int64(3), f.cache.Posts()[0].CommentCount)

		f.repo.AssertExpectations(t)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		f := newCommentFixture()

		_, err := f.service.CreateComment(ctx, userID, "gopher", postID, "  ")
		assert.ErrorIs(t, err, commentsErrors.ErrInvalidCommentData)

		f.postRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated actor is rejected", func(t *testing.T) {
		f := newCommentFixture()

		_, err := f.service.CreateComment(ctx, uuid.Nil, "", postID, "hi")
		assert.ErrorIs(t, err, commentsErrors.ErrUnauthenticated)
	})

	t.Run("failed transaction leaves the cached counter untouched", func(t *testing.T) {
		f := newCommentFixture()
		f.cache.SetPosts([]*postModels.Post{{
			ObjectId: postID, CommentCount: 2, CreatedAt: time.Now(),
		}})
		f.expectTransaction(ctx)

		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.postRepo.On("IncrementCommentCount", mock.Anything, postID, 1).
			Return(errors.New("connection reset"))

		_, err := f.service.CreateComment(ctx, userID, "gopher", postID, "hi")
		require.Error(t, err)

		assert.Equal(t, int64(2), f.cache.Posts()[0].CommentCount)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())
	commentID := uuid.Must(uuid.NewV4())

	comment := &models.Comment{
		ObjectId:    commentID,
		PostId:      postID,
		OwnerUserId: userID,
		Text:        "mine",
	}

	t.Run("owner can delete, and the cached counter drops", func(t *testing.T) {
		f := newCommentFixture()
		f.cache.SetPosts([]*postModels.Post{{
			ObjectId: postID, CommentCount: 3, CreatedAt: time.Now(),
		}})
		f.expectTransaction(ctx)

		f.repo.On("FindByID", ctx, commentID).Return(comment, nil)
		f.repo.On("Delete", mock.Anything, commentID).Return(nil)
		f.postRepo.On("IncrementCommentCount", mock.Anything, postID, -1).Return(nil)

		require.NoError(t, f.service.DeleteComment(ctx, userID, commentID))

		assert.Equal(t, int64(2), f.cache.Posts()[0].CommentCount)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		f := newCommentFixture()
		stranger := uuid.Must(uuid.NewV4())

		f.repo.On("FindByID", ctx, commentID).Return(comment, nil)

		err := f.service.DeleteComment(ctx, stranger, commentID)
		assert.ErrorIs(t, err, commentsErrors.ErrNotCommentOwner)

		f.postRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("missing comment is reported", func(t *testing.T) {
		f := newCommentFixture()

		f.repo.On("FindByID", ctx, commentID).Return(nil, nil)

		err := f.service.DeleteComment(ctx, userID, commentID)
		assert.ErrorIs(t, err, commentsErrors.ErrCommentNotFound)
	})
}
