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

	"github.com/crimsonlab/crimson/internal/database/postgres"
	"github.com/crimsonlab/crimson/posts/models"
)

// postgresRepository implements PostRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresPostRepository creates a new PostgreSQL repository for posts
func NewPostgresPostRepository(client *postgres.Client) PostRepository {
	return &postgresRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFrom(ctx, r.client.DB())
}

const postColumns = `id, community_id, owner_user_id, owner_display_name, title, body,
	score, comment_count, image_url, community_image, created_at, updated_at`

// Create inserts a new post
func (r *postgresRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt

	query := `
		INSERT INTO posts (id, community_id, owner_user_id, owner_display_name, title, body,
			score, comment_count, image_url, community_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		post.ObjectId, post.CommunityId, post.OwnerUserId, post.OwnerDisplayName,
		post.Title, post.Body, post.Score, post.CommentCount,
		post.ImageURL, post.CommunityImage, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// FindByID retrieves a post by its ID
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)

	var post models.Post
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return &post, nil
}

// FindByCommunity retrieves a community's posts, newest first
func (r *postgresRepository) FindByCommunity(ctx context.Context, communityID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		WHERE community_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, postColumns)

	var posts []*models.Post
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &posts, query, communityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return posts, nil
}

// FindRecent retrieves the newest posts across all communities
func (r *postgresRepository) FindRecent(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, postColumns)

	var posts []*models.Post
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return posts, nil
}

// IncrementScore atomically adjusts the score counter for a post
func (r *postgresRepository) IncrementScore(ctx context.Context, postID uuid.UUID, delta int) error {
	query := `UPDATE posts SET score = score + $1, updated_at = NOW() WHERE id = $2`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found")
	}

	return nil
}

// IncrementCommentCount atomically adjusts the comment counter for a post
func (r *postgresRepository) IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error {
	query := `UPDATE posts SET comment_count = comment_count + $1, updated_at = NOW() WHERE id = $2`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found")
	}

	return nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return postgres.RunInTransaction(ctx, r.client, fn)
}

// Delete removes a post by ID
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found")
	}

	return nil
}
