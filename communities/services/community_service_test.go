// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	communitiesErrors "github.com/crimsonlab/crimson/communities/errors"
	"github.com/crimsonlab/crimson/communities/models"
	"github.com/crimsonlab/crimson/communities/repository"
	"github.com/crimsonlab/crimson/internal/localcache"
)

type communityFixture struct {
	repo    *MockCommunityRepository
	cache   *localcache.Store
	service CommunityService
}

func newCommunityFixture() *communityFixture {
	f := &communityFixture{
		repo:  new(MockCommunityRepository),
		cache: localcache.NewStore(),
	}
	f.service = NewCommunityService(f.repo, f.cache)
	return f
}

func (f *communityFixture) expectTransaction(ctx context.Context) {
	f.repo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
}

func TestCommunityService_Join(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	communityID := uuid.Must(uuid.NewV4())

	community := &models.Community{
		ObjectId:    communityID,
		Name:        "gophers",
		CreatorId:   uuid.Must(uuid.NewV4()),
		MemberCount: 3,
		PrivacyType: models.PrivacyPublic,
	}

	t.Run("joining adds the record and one member", func(t *testing.T) {
		f := newCommunityFixture()
		f.cache.SetCurrentCommunity(community)
		f.expectTransaction(ctx)

		f.repo.On("FindCommunityByID", ctx, communityID).Return(community, nil)
		f.repo.On("CreateMembership", mock.Anything, mock.MatchedBy(func(m *models.Membership) bool {
			return m.UserId == userID && m.CommunityId == communityID && !m.IsModerator
		})).Return(nil)
		f.repo.On("IncrementMemberCount", mock.Anything, communityID, 1).Return(nil)

		require.NoError(t, f.service.Join(ctx, userID, communityID))

		assert.True(t, f.cache.IsJoined(userID, communityID))
		assert.Equal(t, int64(4), f.cache.CurrentCommunity().MemberCount)

		f.repo.AssertExpectations(t)
	})

	t.Run("joining twice is a no-op", func(t *testing.T) {
		f := newCommunityFixture()
		f.cache.SetCurrentCommunity(community)
		f.cache.CommitMembership(userID, communityID, &models.Membership{
			ObjectId: uuid.Must(uuid.NewV4()), UserId: userID, CommunityId: communityID,
		}, 0)

		f.repo.On("FindCommunityByID", ctx, communityID).Return(community, nil)

		require.NoError(t, f.service.Join(ctx, userID, communityID))

		assert.Equal(t, int64(3), f.cache.CurrentCommunity().MemberCount)
		f.repo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "CreateMembership", mock.Anything, mock.Anything)
	})

	t.Run("duplicate conflict adopts the stored membership", func(t *testing.T) {
		f := newCommunityFixture()
		f.cache.SetCurrentCommunity(community)
		f.expectTransaction(ctx)

		stored := &models.Membership{
			ObjectId: uuid.Must(uuid.NewV4()), UserId: userID, CommunityId: communityID,
		}

		f.repo.On("FindCommunityByID", ctx, communityID).Return(community, nil)
		f.repo.On("CreateMembership", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateMembership)
		f.repo.On("FindMembership", ctx, userID, communityID).Return(stored, nil)

		require.NoError(t, f.service.Join(ctx, userID, communityID))

		assert.True(t, f.cache.IsJoined(userID, communityID))
		// The stored row was already counted, so the counter stays put.
		assert.Equal(t, int64(3), f.cache.CurrentCommunity().MemberCount)

		f.repo.AssertNotCalled(t, "IncrementMemberCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown community is rejected", func(t *testing.T) {
		f := newCommunityFixture()
		f.repo.On("FindCommunityByID", ctx, communityID).Return(nil, nil)

		err := f.service.Join(ctx, userID, communityID)
		assert.ErrorIs(t, err, communitiesErrors.ErrCommunityNotFound)
	})

	t.Run("unauthenticated actor is rejected", func(t *testing.T) {
		f := newCommunityFixture()
		err := f.service.Join(ctx, uuid.Nil, communityID)
		assert.ErrorIs(t, err, communitiesErrors.ErrUnauthenticated)
	})

	t.Run("failed transaction leaves the cache untouched", func(t *testing.T) {
		f := newCommunityFixture()
		f.cache.SetCurrentCommunity(community)
		f.expectTransaction(ctx)

		f.repo.On("FindCommunityByID", ctx, communityID).Return(community, nil)
		f.repo.On("CreateMembership", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("IncrementMemberCount", mock.Anything, communityID, 1).
			Return(errors.New("connection reset"))

		err := f.service.Join(ctx, userID, communityID)
		require.Error(t, err)

		assert.False(t, f.cache.IsJoined(userID, communityID))
		assert.Equal(t, int64(3), f.cache.CurrentCommunity().MemberCount)
	})
}

func TestCommunityService_Leave(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	communityID := uuid.Must(uuid.NewV4())

	community := &models.Community{
		ObjectId:    communityID,
		Name:        "gophers",
		MemberCount: 3,
	}

	seedJoined := func(f *communityFixture) {
		f.cache.SetCurrentCommunity(community)
		f.cache.CommitMembership(userID, communityID, &models.Membership{
			ObjectId: uuid.Must(uuid.NewV4()), UserId: userID, CommunityId: communityID,
		}, 0)
	}

	t.Run("leaving removes the record and one member", func(t *testing.T) {
		f := newCommunityFixture()
		seedJoined(f)
		f.expectTransaction(ctx)

		f.repo.On("DeleteMembership", mock.Anything, userID, communityID).Return(nil)
		f.repo.On("IncrementMemberCount", mock.Anything, communityID, -1).Return(nil)

		require.NoError(t, f.service.Leave(ctx, userID, communityID))

		assert.False(t, f.cache.IsJoined(userID, communityID))
		assert.Equal(t, int64(2), f.cache.CurrentCommunity().MemberCount)

		f.repo.AssertExpectations(t)
	})

	t.Run("leaving without having joined is a no-op", func(t *testing.T) {
		f := newCommunityFixture()
		f.cache.SetCurrentCommunity(community)

		require.NoError(t, f.service.Leave(ctx, userID, communityID))

		// No write, no counter movement: the count cannot go below the
		// true membership.
		assert.Equal(t, int64(3), f.cache.CurrentCommunity().MemberCount)
		f.repo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "DeleteMembership", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing store row corrects the stale cache", func(t *testing.T) {
		f := newCommunityFixture()
		seedJoined(f)
		f.expectTransaction(ctx)

		f.repo.On("DeleteMembership", mock.Anything, userID, communityID).
			Return(repository.ErrMembershipNotFound)

		require.NoError(t, f.service.Leave(ctx, userID, communityID))

		assert.False(t, f.cache.IsJoined(userID, communityID))
		assert.Equal(t, int64(3), f.cache.CurrentCommunity().MemberCount)

		f.repo.AssertNotCalled(t, "IncrementMemberCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated actor is rejected", func(t *testing.T) {
		f := newCommunityFixture()
		err := f.service.Leave(ctx, uuid.Nil, communityID)
		assert.ErrorIs(t, err, communitiesErrors.ErrUnauthenticated)
	})
}

func TestCommunityService_CreateCommunity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	t.Run("creates the community with its creator as first member", func(t *testing.T) {
		f := newCommunityFixture()
		f.expectTransaction(ctx)

		f.repo.On("CreateCommunity", mock.Anything, mock.MatchedBy(func(c *models.Community) bool {
			return c.Name == "gophers" && c.CreatorId == userID && c.MemberCount == 1
		})).Return(nil)
		f.repo.On("CreateMembership", mock.Anything, mock.MatchedBy(func(m *models.Membership) bool {
			return m.UserId == userID && m.IsModerator
		})).Return(nil)

		community, err := f.service.CreateCommunity(ctx, userID, "gophers", models.PrivacyPublic, "")
		require.NoError(t, err)
		require.NotNil(t, community)

		assert.True(t, f.cache.IsJoined(userID, community.ObjectId))
		assert.Equal(t, int64(1), f.cache.CurrentCommunity().MemberCount)

		f.repo.AssertExpectations(t)
	})

	t.Run("taken name is rejected", func(t *testing.T) {
		f := newCommunityFixture()
		f.expectTransaction(ctx)

		f.repo.On("CreateCommunity", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateCommunity)

		_, err := f.service.CreateCommunity(ctx, userID, "gophers", models.PrivacyPublic, "")
		assert.ErrorIs(t, err, communitiesErrors.ErrCommunityNameTaken)
	})

	t.Run("bad names are rejected before any store work", func(t *testing.T) {
		f := newCommunityFixture()

		for _, name := range []string{"", "ab", "has spaces", "way-too-long-for-a-community"} {
			_, err := f.service.CreateCommunity(ctx, userID, name, models.PrivacyPublic, "")
			assert.ErrorIs(t, err, communitiesErrors.ErrInvalidCommunityName, "name %q", name)
		}

		f.repo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("bad privacy type is rejected", func(t *testing.T) {
		f := newCommunityFixture()

		_, err := f.service.CreateCommunity(ctx, userID, "gophers", "secret", "")
		assert.ErrorIs(t, err, communitiesErrors.ErrInvalidPrivacyType)
	})

	t.Run("empty privacy type defaults to public", func(t *testing.T) {
		f := newCommunityFixture()
		f.expectTransaction(ctx)

		f.repo.On("CreateCommunity", mock.Anything, mock.MatchedBy(func(c *models.Community) bool {
			return c.PrivacyType == models.PrivacyPublic
		})).Return(nil)
		f.repo.On("CreateMembership", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.CreateCommunity(ctx, userID, "gophers", "", "")
		require.NoError(t, err)
	})
}

func TestCommunityService_LoadMemberships(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	communityID := uuid.Must(uuid.NewV4())

	f := newCommunityFixture()

	stored := []*models.Membership{{
		ObjectId: uuid.Must(uuid.NewV4()), UserId: userID, CommunityId: communityID,
	}}
	f.repo.On("FindMembershipsByUser", ctx, userID).Return(stored, nil)

	loaded, err := f.service.LoadMemberships(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.True(t, f.cache.IsJoined(userID, communityID))

	f.service.ClearMemberships(userID)
	assert.False(t, f.cache.IsJoined(userID, communityID))
}

func TestCommunityService_GetCommunity(t *testing.T) {
	ctx := context.Background()
	communityID := uuid.Must(uuid.NewV4())

	f := newCommunityFixture()

	community := &models.Community{ObjectId: communityID, Name: "gophers", MemberCount: 7}
	f.repo.On("FindCommunityByID", ctx, communityID).Return(community, nil)

	got, err := f.service.GetCommunity(ctx, communityID)
	require.NoError(t, err)
	assert.Equal(t, communityID, got.ObjectId)
	assert.Equal(t, int64(7), f.cache.CurrentCommunity().MemberCount)
}
