// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/comments/models"
)

// CommentRepository defines the interface for comment-specific database
// operations.
type CommentRepository interface {
	// Create inserts a new comment. Runs inside the same transaction as
	// the owning post's counter increment.
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its ID. Returns (nil, nil) when
	// no comment exists.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// FindByPost retrieves a post's comments, newest first.
	FindByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	// Delete removes a comment. Runs inside the same transaction as the
	// owning post's counter decrement.
	Delete(ctx context.Context, id uuid.UUID) error
}
