// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crimsonlab/crimson/comments/models"
	"github.com/crimsonlab/crimson/internal/database/postgres"
)

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresCommentRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFrom(ctx, r.client.DB())
}

// Create inserts a new comment
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.UpdatedAt = comment.CreatedAt

	query := `
		INSERT INTO comments (id, post_id, owner_user_id, owner_display_name, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		comment.ObjectId, comment.PostId, comment.OwnerUserId,
		comment.OwnerDisplayName, comment.Text, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID
func (r *postgresCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, post_id, owner_user_id, owner_display_name, text, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return &comment, nil
}

// FindByPost retrieves a post's comments, newest first
func (r *postgresCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	query := `
		SELECT id, post_id, owner_user_id, owner_display_name, text, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var comments []*models.Comment
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

// Delete removes a comment
func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment not found: %s", id)
	}

	return nil
}
