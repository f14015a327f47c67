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

	"github.com/crimsonlab/crimson/communities/models"
	"github.com/crimsonlab/crimson/internal/database/postgres"
)

// pqUniqueViolation is the SQLSTATE class for unique constraint errors.
const pqUniqueViolation = "23505"

// postgresCommunityRepository implements CommunityRepository using raw SQL queries
type postgresCommunityRepository struct {
	client *postgres.Client
}

// NewPostgresCommunityRepository creates a new PostgreSQL repository for communities
func NewPostgresCommunityRepository(client *postgres.Client) CommunityRepository {
	return &postgresCommunityRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresCommunityRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFrom(ctx, r.client.DB())
}

const communityColumns = `id, name, creator_id, member_count, privacy_type, image_url, created_at, updated_at`

// CreateCommunity inserts a new community
func (r *postgresCommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	if community.CreatedAt.IsZero() {
		community.CreatedAt = time.Now()
	}
	community.UpdatedAt = community.CreatedAt

	query := `
		INSERT INTO communities (id, name, creator_id, member_count, privacy_type, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		community.ObjectId, community.Name, community.CreatorId, community.MemberCount,
		community.PrivacyType, community.ImageURL, community.CreatedAt, community.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return fmt.Errorf("%w: %v", ErrDuplicateCommunity, err)
		}
		return fmt.Errorf("failed to create community: %w", err)
	}

	return nil
}

// FindCommunityByID retrieves a community by its ID
func (r *postgresCommunityRepository) FindCommunityByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	query := fmt.Sprintf(`SELECT %s FROM communities WHERE id = $1`, communityColumns)

	var community models.Community
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &community, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find community: %w", err)
	}

	return &community, nil
}

// FindCommunityByName retrieves a community by its unique name
func (r *postgresCommunityRepository) FindCommunityByName(ctx context.Context, name string) (*models.Community, error) {
	query := fmt.Sprintf(`SELECT %s FROM communities WHERE name = $1`, communityColumns)

	var community models.Community
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &community, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find community: %w", err)
	}

	return &community, nil
}

// ListCommunities retrieves communities ordered by member count
func (r *postgresCommunityRepository) ListCommunities(ctx context.Context, limit, offset int) ([]*models.Community, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM communities
		ORDER BY member_count DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`, communityColumns)

	var communities []*models.Community
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &communities, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}

	return communities, nil
}

// IncrementMemberCount atomically adjusts the member counter
func (r *postgresCommunityRepository) IncrementMemberCount(ctx context.Context, communityID uuid.UUID, delta int) error {
	query := `UPDATE communities SET member_count = member_count + $1, updated_at = NOW() WHERE id = $2`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, delta, communityID)
	if err != nil {
		return fmt.Errorf("failed to increment member count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("community not found")
	}

	return nil
}

// CreateMembership inserts a membership record
func (r *postgresCommunityRepository) CreateMembership(ctx context.Context, membership *models.Membership) error {
	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO community_memberships (id, user_id, community_id, is_moderator, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		membership.ObjectId, membership.UserId, membership.CommunityId,
		membership.IsModerator, membership.ImageURL, membership.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return fmt.Errorf("%w: %v", ErrDuplicateMembership, err)
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// DeleteMembership removes the actor's membership record
func (r *postgresCommunityRepository) DeleteMembership(ctx context.Context, userID, communityID uuid.UUID) error {
	query := `DELETE FROM community_memberships WHERE user_id = $1 AND community_id = $2`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, userID, communityID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// FindMembership retrieves the actor's membership in a community
func (r *postgresCommunityRepository) FindMembership(ctx context.Context, userID, communityID uuid.UUID) (*models.Membership, error) {
	query := `
		SELECT id, user_id, community_id, is_moderator, image_url, created_at
		FROM community_memberships
		WHERE user_id = $1 AND community_id = $2
	`

	var membership models.Membership
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &membership, query, userID, communityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	return &membership, nil
}

// FindMembershipsByUser retrieves all of the actor's memberships
func (r *postgresCommunityRepository) FindMembershipsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error) {
	query := `
		SELECT id, user_id, community_id, is_moderator, image_url, created_at
		FROM community_memberships
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var memberships []*models.Membership
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &memberships, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find memberships: %w", err)
	}

	return memberships, nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresCommunityRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return postgres.RunInTransaction(ctx, r.client, fn)
}
