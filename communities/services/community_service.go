// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	uuid "github.com/gofrs/uuid"

	communitiesErrors "github.com/crimsonlab/crimson/communities/errors"
	"github.com/crimsonlab/crimson/communities/membership"
	"github.com/crimsonlab/crimson/communities/models"
	"github.com/crimsonlab/crimson/communities/repository"
	"github.com/crimsonlab/crimson/internal/localcache"
)

// communityNamePattern matches legal community names: 3 to 21 letters,
// digits, dots or underscores.
var communityNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]{3,21}$`)

// CommunityService defines the interface for community operations
type CommunityService interface {
	// CreateCommunity creates a community and joins the creator as its
	// first member and moderator, in one transaction.
	CreateCommunity(ctx context.Context, userID uuid.UUID, name, privacyType, imageURL string) (*models.Community, error)

	// GetCommunity retrieves a community and caches it as the one being
	// viewed.
	GetCommunity(ctx context.Context, communityID uuid.UUID) (*models.Community, error)

	// ListCommunities retrieves communities, largest first.
	ListCommunities(ctx context.Context, limit, offset int) ([]*models.Community, error)

	// Join adds the actor to a community. The membership record and the
	// member counter move in one transaction; joining twice is a no-op.
	Join(ctx context.Context, userID, communityID uuid.UUID) error

	// Leave removes the actor from a community. Leaving a community the
	// actor never joined is a no-op.
	Leave(ctx context.Context, userID, communityID uuid.UUID) error

	// LoadMemberships warms the local cache with the actor's stored
	// memberships and returns them.
	LoadMemberships(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error)

	// ClearMemberships drops the actor's cached memberships on sign-out.
	ClearMemberships(userID uuid.UUID)
}

// communityService implements the CommunityService interface
type communityService struct {
	repo  repository.CommunityRepository
	cache *localcache.Store
}

// NewCommunityService creates a new instance of the community service
func NewCommunityService(repo repository.CommunityRepository, cache *localcache.Store) CommunityService {
	return &communityService{
		repo:  repo,
		cache: cache,
	}
}

// CreateCommunity creates a community and joins the creator as its
// first member. The community row starts with a member count of one and
// the creator's moderator membership lands in the same transaction, so
// the counter and the membership rows can never disagree.
func (s *communityService) CreateCommunity(ctx context.Context, userID uuid.UUID, name, privacyType, imageURL string) (*models.Community, error) {
	if userID == uuid.Nil {
		return nil, communitiesErrors.ErrUnauthenticated
	}
	if !communityNamePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", communitiesErrors.ErrInvalidCommunityName, name)
	}
	if privacyType == "" {
		privacyType = models.PrivacyPublic
	}
	if !models.IsValidPrivacyType(privacyType) {
		return nil, fmt.Errorf("%w: %q", communitiesErrors.ErrInvalidPrivacyType, privacyType)
	}

	communityID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate community ID: %w", err)
	}
	membershipID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	community := &models.Community{
		ObjectId:    communityID,
		Name:        name,
		CreatorId:   userID,
		MemberCount: 1,
		PrivacyType: privacyType,
		ImageURL:    imageURL,
	}
	creatorMembership := &models.Membership{
		ObjectId:    membershipID,
		UserId:      userID,
		CommunityId: communityID,
		IsModerator: true,
		ImageURL:    imageURL,
	}

	err = s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateCommunity(txCtx, community); err != nil {
			return err
		}
		return s.repo.CreateMembership(txCtx, creatorMembership)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCommunity) {
			return nil, fmt.Errorf("%w: %q", communitiesErrors.ErrCommunityNameTaken, name)
		}
		return nil, err
	}

	// Counter delta is zero: the row was born with the creator counted.
	s.cache.CommitMembership(userID, communityID, creatorMembership, 0)
	s.cache.SetCurrentCommunity(community)

	return community, nil
}

// GetCommunity retrieves a community and caches it as the one being viewed
func (s *communityService) GetCommunity(ctx context.Context, communityID uuid.UUID) (*models.Community, error) {
	community, err := s.repo.FindCommunityByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, communitiesErrors.ErrCommunityNotFound
	}

	s.cache.SetCurrentCommunity(community)
	return community, nil
}

// ListCommunities retrieves communities, largest first
func (s *communityService) ListCommunities(ctx context.Context, limit, offset int) ([]*models.Community, error) {
	return s.repo.ListCommunities(ctx, limit, offset)
}

// Join adds the actor to a community.
//
// The decision is made from the cached membership state. When the store
// reports the membership already exists, the cache was stale; the
// stored record is adopted and the press counts as already satisfied,
// with no counter movement.
func (s *communityService) Join(ctx context.Context, userID, communityID uuid.UUID) error {
	if userID == uuid.Nil {
		return communitiesErrors.ErrUnauthenticated
	}

	community, err := s.repo.FindCommunityByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community == nil {
		return communitiesErrors.ErrCommunityNotFound
	}

	decision := membership.DecideJoin(s.cache.IsJoined(userID, communityID))
	if decision.Action == membership.ActionNone {
		return nil
	}

	membershipID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate membership ID: %w", err)
	}
	newMembership := &models.Membership{
		ObjectId:    membershipID,
		UserId:      userID,
		CommunityId: communityID,
		IsModerator: userID == community.CreatorId,
		ImageURL:    community.ImageURL,
	}

	err = s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateMembership(txCtx, newMembership); err != nil {
			return err
		}
		return s.repo.IncrementMemberCount(txCtx, communityID, decision.CounterDelta)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMembership) {
			// Another device joined first. Adopt the stored record; the
			// counter already accounts for it.
			actual, findErr := s.repo.FindMembership(ctx, userID, communityID)
			if findErr != nil {
				return fmt.Errorf("failed to refresh membership after conflict: %w", findErr)
			}
			s.cache.CommitMembership(userID, communityID, actual, 0)
			return nil
		}
		return err
	}

	s.cache.CommitMembership(userID, communityID, newMembership, decision.CounterDelta)
	return nil
}

// Leave removes the actor from a community.
//
// When the cache says the actor never joined, nothing is written and
// the member counter does not move. When the store turns out to have no
// membership row either, the cache was stale; it is corrected and the
// press counts as already satisfied.
func (s *communityService) Leave(ctx context.Context, userID, communityID uuid.UUID) error {
	if userID == uuid.Nil {
		return communitiesErrors.ErrUnauthenticated
	}

	decision := membership.DecideLeave(s.cache.IsJoined(userID, communityID))
	if decision.Action == membership.ActionNone {
		return nil
	}

	err := s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteMembership(txCtx, userID, communityID); err != nil {
			return err
		}
		return s.repo.IncrementMemberCount(txCtx, communityID, decision.CounterDelta)
	})
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			s.cache.CommitMembership(userID, communityID, nil, 0)
			return nil
		}
		return err
	}

	s.cache.CommitMembership(userID, communityID, nil, decision.CounterDelta)
	return nil
}

// LoadMemberships warms the local cache with the actor's stored memberships
func (s *communityService) LoadMemberships(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error) {
	if userID == uuid.Nil {
		return nil, communitiesErrors.ErrUnauthenticated
	}

	memberships, err := s.repo.FindMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	s.cache.ReplaceMemberships(userID, memberships)
	return memberships, nil
}

// ClearMemberships drops the actor's cached memberships
func (s *communityService) ClearMemberships(userID uuid.UUID) {
	s.cache.ClearMemberships(userID)
}
