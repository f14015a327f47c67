// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"errors"

	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/votes/models"
)

// ErrDuplicateVote is returned by Create when a vote row for the same
// (owner, post) pair already exists. It signals that the caller's view
// of the actor's votes is stale and must be re-fetched.
var ErrDuplicateVote = errors.New("vote already exists for this post")

// VoteRepository defines the interface for vote-specific database
// operations. The service layer decides which mutation to run; the
// repository only executes it, honoring a transaction carried in the
// context.
type VoteRepository interface {
	// Create inserts a new vote record. Returns ErrDuplicateVote when
	// the unique (owner, post) constraint rejects the insert.
	Create(ctx context.Context, vote *models.Vote) error

	// UpdateValue rewrites the direction of an existing vote (a flip).
	UpdateValue(ctx context.Context, voteID uuid.UUID, value int) error

	// Delete removes a vote record (toggle off).
	Delete(ctx context.Context, voteID uuid.UUID) error

	// FindByUserAndPost retrieves the actor's vote on a post. Returns
	// (nil, nil) when no vote exists; absence is a normal state, not an
	// error.
	FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Vote, error)

	// FindByUser retrieves all of the actor's votes, used to warm the
	// local cache on sign-in and to re-fetch after a write conflict.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error)

	// GetVotesForPosts bulk retrieves the actor's votes for multiple
	// posts as a map of postID -> value (0 if no vote exists). This
	// avoids N+1 queries when enriching post lists with vote status.
	GetVotesForPosts(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]int, error)
}
