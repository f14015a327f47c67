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
	"github.com/lib/pq"

	"github.com/crimsonlab/crimson/internal/database/postgres"
	"github.com/crimsonlab/crimson/votes/models"
)

// pqUniqueViolation is the SQLSTATE class for unique constraint errors.
const pqUniqueViolation = "23505"

// postgresVoteRepository implements VoteRepository using raw SQL queries
type postgresVoteRepository struct {
	client *postgres.Client
}

// NewPostgresVoteRepository creates a new PostgreSQL repository for votes
func NewPostgresVoteRepository(client *postgres.Client) VoteRepository {
	return &postgresVoteRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresVoteRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFrom(ctx, r.client.DB())
}

// Create inserts a new vote record
func (r *postgresVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}
	vote.UpdatedAt = vote.CreatedAt

	query := `
		INSERT INTO votes (id, owner_user_id, post_id, community_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		vote.ObjectId, vote.OwnerUserId, vote.PostId, vote.CommunityId,
		vote.Value, vote.CreatedAt, vote.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return fmt.Errorf("%w: %v", ErrDuplicateVote, err)
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}

	return nil
}

// UpdateValue rewrites the direction of an existing vote
func (r *postgresVoteRepository) UpdateValue(ctx context.Context, voteID uuid.UUID, value int) error {
	query := `
		UPDATE votes
		SET value = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, voteID, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("vote not found: %s", voteID)
	}

	return nil
}

// Delete removes a vote record
func (r *postgresVoteRepository) Delete(ctx context.Context, voteID uuid.UUID) error {
	query := `DELETE FROM votes WHERE id = $1`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, voteID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("vote not found: %s", voteID)
	}

	return nil
}

// FindByUserAndPost retrieves the actor's vote on a post
func (r *postgresVoteRepository) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Vote, error) {
	query := `
		SELECT id, owner_user_id, post_id, community_id, value, created_at, updated_at
		FROM votes
		WHERE owner_user_id = $1 AND post_id = $2
	`

	var vote models.Vote
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &vote, query, userID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// FindByUser retrieves all of the actor's votes
func (r *postgresVoteRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error) {
	query := `
		SELECT id, owner_user_id, post_id, community_id, value, created_at, updated_at
		FROM votes
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
	`

	var votes []*models.Vote
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &votes, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find votes: %w", err)
	}

	return votes, nil
}

// GetVotesForPosts bulk retrieves the actor's votes for multiple posts
func (r *postgresVoteRepository) GetVotesForPosts(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]int, error) {
	if len(postIDs) == 0 {
		return make(map[uuid.UUID]int), nil
	}

	postIDStrings := make([]string, len(postIDs))
	for i, id := range postIDs {
		postIDStrings[i] = id.String()
	}

	query := `
		SELECT post_id, value
		FROM votes
		WHERE owner_user_id = $1 AND post_id = ANY($2::uuid[])
	`

	type voteResult struct {
		PostID uuid.UUID `db:"post_id"`
		Value  int       `db:"value"`
	}

	var results []voteResult
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &results, query, userID, pq.Array(postIDStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to get votes for posts: %w", err)
	}

	voteMap := make(map[uuid.UUID]int, len(results))
	for _, result := range results {
		voteMap[result.PostID] = result.Value
	}
	for _, postID := range postIDs {
		if _, exists := voteMap[postID]; !exists {
			voteMap[postID] = 0
		}
	}

	return voteMap, nil
}
