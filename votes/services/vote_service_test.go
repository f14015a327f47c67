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

	"github.com/crimsonlab/crimson/internal/localcache"
	postModels "github.com/crimsonlab/crimson/posts/models"
	votesErrors "github.com/crimsonlab/crimson/votes/errors"
	"github.com/crimsonlab/crimson/votes/models"
	voteRepository "github.com/crimsonlab/crimson/votes/repository"
)

type voteFixture struct {
	voteRepo *MockVoteRepository
	postRepo *MockPostRepositoryForVotes
	cache    *localcache.Store
	service  VoteService
}

func newVoteFixture() *voteFixture {
	f := &voteFixture{
		voteRepo: new(MockVoteRepository),
		postRepo: new(MockPostRepositoryForVotes),
		cache:    localcache.NewStore(),
	}
	f.service = NewVoteService(f.voteRepo, f.postRepo, f.cache)
	return f
}

// seedPost puts a post with the given score into the cache so the test
// can observe the committed delta.
func (f *voteFixture) seedPost(postID uuid.UUID, score int64) {
	f.cache.SetPosts([]*postModels.Post{{
		ObjectId:  postID,
		Score:     score,
		CreatedAt: time.Now(),
	}})
}

func (f *voteFixture) expectTransaction(ctx context.Context) {
	f.postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
}

func TestVoteService_Vote(t *testing.T) {
	ctx := context.Background()
	postID := uuid.Must(uuid.NewV4())
	communityID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	t.Run("new up vote creates record and adds one", func(t *testing.T) {
		f := newVoteFixture()
		f.seedPost(postID, 5)
		f.expectTransaction(ctx)

		f.voteRepo.On("Create", mock.Anything, mock.MatchedBy(func(vote *models.Vote) bool {
			return vote.PostId == postID && vote.OwnerUserId == userID &&
				vote.CommunityId == communityID && vote.Value == models.ValueUp
		})).Return(nil)
		f.postRepo.On("IncrementScore", mock.Anything, postID, 1).Return(nil)

		err := f.service.Vote(ctx, userID, postID, communityID, models.ValueUp)
		require.NoError(t, err)

		cached := f.cache.VoteFor(userID, postID)
		require.NotNil(t, cached)
		assert.Equal(t, models.ValueUp, cached.Value)
		assert.Equal(t, int64(6), f.cache.Posts()[0].Score)

		f.voteRepo.AssertExpectations(t)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("same press again removes the vote", func(t *testing.T) {
		f := newVoteFixture()
		f.seedPost(postID, 6)
		f.expectTransaction(ctx)

		existingID := uuid.Must(uuid.NewV4())
		f.cache.SetVote(userID, postID, &models.Vote{
			ObjectId: existingID, OwnerUserId: userID, PostId: postID,
			CommunityId: communityID, Value: models.ValueUp,
		})

		f.voteRepo.On("Delete", mock.Anything, existingID).Return(nil)
		f.postRepo.On("IncrementScore", mock.Anything, postID, -1).Return(nil)

		err := f.service.Vote(ctx, userID, postID, communityID, models.ValueUp)
		require.NoError(t, err)

		assert.Nil(t, f.cache.VoteFor(userID, postID))
		assert.Equal(t, int64(5), f.cache.Posts()[0].Score)

		f.voteRepo.AssertExpectations(t)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("opposite press flips and moves score by two", func(t *testing.T) {
		f := newVoteFixture()
		f.seedPost(postID, 4)
		f.expectTransaction(ctx)

		existingID := uuid.Must(uuid.NewV4())
		f.cache.SetVote(userID, postID, &models.Vote{
			ObjectId: existingID, OwnerUserId: userID, PostId: postID,
			CommunityId: communityID, Value: models.ValueDown,
		})

		f.voteRepo.On("UpdateValue", mock.Anything, existingID, models.ValueUp).Return(nil)
		f.postRepo.On("IncrementScore", mock.Anything, postID, 2).Return(nil)

		err := f.service.Vote(ctx, userID, postID, communityID, models.ValueUp)
		require.NoError(t, err)

		cached := f.cache.VoteFor(userID, postID)
		require.NotNil(t, cached)
		assert.Equal(t, models.ValueUp, cached.Value)
		assert.Equal(t, int64(6), f.cache.Posts()[0].Score)

		f.voteRepo.AssertExpectations(t)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("invalid value is rejected before any store work", func(t *testing.T) {
		f := newVoteFixture()

		err := f.service.Vote(ctx, userID, postID, communityID, 0)
		assert.ErrorIs(t, err, votesErrors.ErrInvalidVoteValue)

		f.postRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated actor is rejected", func(t *testing.T) {
		f := newVoteFixture()

		err := f.service.Vote(ctx, uuid.Nil, postID, communityID, models.ValueUp)
		assert.ErrorIs(t, err, votesErrors.ErrUnauthenticated)
	})

	t.Run("failed transaction leaves the cache untouched", func(t *testing.T) {
		f := newVoteFixture()
		f.seedPost(postID, 5)
		f.expectTransaction(ctx)

		f.voteRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.postRepo.On("IncrementScore", mock.Anything, postID, 1).
			Return(errors.New("connection reset"))

		err := f.service.Vote(ctx, userID, postID, communityID, models.ValueUp)
		require.Error(t, err)

		// The press failed as a whole, so neither the vote record nor
		// the score delta may appear locally.
		assert.Nil(t, f.cache.VoteFor(userID, postID))
		assert.Equal(t, int64(5), f.cache.Posts()[0].Score)
	})

	t.Run("duplicate conflict refreshes the cache and retries once", func(t *testing.T) {
		f := newVoteFixture()
		f.seedPost(postID, 5)
		f.expectTransaction(ctx)

		// Another device already created an up vote; the local cache
		// does not know about it yet.
		remoteID := uuid.Must(uuid.NewV4())
		remote := &models.Vote{
			ObjectId: remoteID, OwnerUserId: userID, PostId: postID,
			CommunityId: communityID, Value: models.ValueUp,
		}

		f.voteRepo.On("Create", mock.Anything, mock.Anything).
			Return(voteRepository.ErrDuplicateVote).Once()
		f.voteRepo.On("FindByUserAndPost", ctx, userID, postID).Return(remote, nil).Once()

		// The retry sees the refreshed record and toggles it off.
		f.voteRepo.On("Delete", mock.Anything, remoteID).Return(nil).Once()
		f.postRepo.On("IncrementScore", mock.Anything, postID, -1).Return(nil).Once()

		err := f.service.Vote(ctx, userID, postID, communityID, models.ValueUp)
		require.NoError(t, err)

		assert.Nil(t, f.cache.VoteFor(userID, postID))
		assert.Equal(t, int64(4), f.cache.Posts()[0].Score)

		f.voteRepo.AssertExpectations(t)
		f.postRepo.AssertExpectations(t)
	})

	t.Run("second conflict surfaces as a vote conflict", func(t *testing.T) {
		f := newVoteFixture()
		f.seedPost(postID, 5)
		f.expectTransaction(ctx)

		f.voteRepo.On("Create", mock.Anything, mock.Anything).
			Return(voteRepository.ErrDuplicateVote).Twice()
		f.voteRepo.On("FindByUserAndPost", ctx, userID, postID).Return(nil, nil).Once()

		err := f.service.Vote(ctx, userID, postID, communityID, models.ValueUp)
		assert.ErrorIs(t, err, votesErrors.ErrVoteConflict)

		assert.Equal(t, int64(5), f.cache.Posts()[0].Score)
		f.voteRepo.AssertExpectations(t)
	})
}

func TestVoteService_LoadVotes(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	f := newVoteFixture()

	stored := []*models.Vote{{
		ObjectId: uuid.Must(uuid.NewV4()), OwnerUserId: userID,
		PostId: postID, Value: models.ValueDown,
	}}
	f.voteRepo.On("FindByUser", ctx, userID).Return(stored, nil)

	loaded, err := f.service.LoadVotes(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	cached := f.cache.VoteFor(userID, postID)
	require.NotNil(t, cached)
	assert.Equal(t, models.ValueDown, cached.Value)

	f.service.ClearVotes(userID)
	assert.Nil(t, f.cache.VoteFor(userID, postID))
}

func TestVoteService_LoadVotesUnauthenticated(t *testing.T) {
	f := newVoteFixture()
	_, err := f.service.LoadVotes(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, votesErrors.ErrUnauthenticated)
}
