// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"errors"

	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/communities/models"
)

// Duplicate errors signal that a unique constraint rejected an insert,
// which means the caller's cached view of the store is stale.
var (
	ErrDuplicateCommunity  = errors.New("community name already exists")
	ErrDuplicateMembership = errors.New("membership already exists")
	ErrMembershipNotFound  = errors.New("membership not found")
)

// CommunityRepository defines the interface for community and
// membership database operations. The service layer decides which
// mutation to run; the repository executes it, honoring a transaction
// carried in the context.
type CommunityRepository interface {
	// CreateCommunity inserts a new community. Returns
	// ErrDuplicateCommunity when the name is taken.
	CreateCommunity(ctx context.Context, community *models.Community) error

	// FindCommunityByID retrieves a community by its ID. Returns
	// (nil, nil) when no community exists.
	FindCommunityByID(ctx context.Context, id uuid.UUID) (*models.Community, error)

	// FindCommunityByName retrieves a community by its unique name.
	// Returns (nil, nil) when no community exists.
	FindCommunityByName(ctx context.Context, name string) (*models.Community, error)

	// ListCommunities retrieves communities ordered by member count,
	// largest first.
	ListCommunities(ctx context.Context, limit, offset int) ([]*models.Community, error)

	// IncrementMemberCount atomically adjusts the member counter. Runs
	// inside the same transaction as the membership mutation it pairs
	// with.
	IncrementMemberCount(ctx context.Context, communityID uuid.UUID, delta int) error

	// CreateMembership inserts a membership record. Returns
	// ErrDuplicateMembership when the unique (user, community)
	// constraint rejects the insert.
	CreateMembership(ctx context.Context, membership *models.Membership) error

	// DeleteMembership removes the actor's membership record. Returns
	// ErrMembershipNotFound when no record exists.
	DeleteMembership(ctx context.Context, userID, communityID uuid.UUID) error

	// FindMembership retrieves the actor's membership in a community.
	// Returns (nil, nil) when none exists; absence is a normal state.
	FindMembership(ctx context.Context, userID, communityID uuid.UUID) (*models.Membership, error)

	// FindMembershipsByUser retrieves all of the actor's memberships,
	// used to warm the local cache on sign-in and to re-fetch after a
	// write conflict.
	FindMembershipsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error)

	// WithTransaction executes a function within a database
	// transaction. Every repository call made with the derived context
	// joins the transaction.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
