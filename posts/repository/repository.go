// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/posts/models"
)

// PostRepository defines the interface for post-specific database
// operations.
type PostRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *models.Post) error

	// FindByID retrieves a post by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// FindByCommunity retrieves a community's posts, newest first
	FindByCommunity(ctx context.Context, communityID uuid.UUID, limit, offset int) ([]*models.Post, error)

	// FindRecent retrieves the newest posts across all communities
	FindRecent(ctx context.Context, limit, offset int) ([]*models.Post, error)

	// IncrementScore atomically adjusts the score counter for a post.
	// Runs inside the same transaction as the vote mutation it pairs
	// with.
	IncrementScore(ctx context.Context, postID uuid.UUID, delta int) error

	// IncrementCommentCount atomically adjusts the comment counter,
	// paired in one transaction with the comment record change.
	IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error

	// WithTransaction executes a function within a database transaction.
	// Every repository call made with the derived context joins the
	// transaction.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error

	// Delete removes a post by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
