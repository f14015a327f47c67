// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/crimsonlab/crimson/communities/models"
	"github.com/crimsonlab/crimson/communities/repository"
)

// MockCommunityRepository is a mock implementation of
// CommunityRepository for testing
type MockCommunityRepository struct {
	mock.Mock
}

// Ensure MockCommunityRepository implements CommunityRepository
var _ repository.CommunityRepository = (*MockCommunityRepository)(nil)

// CreateCommunity mocks the CreateCommunity method
func (m *MockCommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	args := m.Called(ctx, community)
	return args.Error(0)
}

// FindCommunityByID mocks the FindCommunityByID method
func (m *MockCommunityRepository) FindCommunityByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Community), args.Error(1)
}

// FindCommunityByName mocks the FindCommunityByName method
func (m *MockCommunityRepository) FindCommunityByName(ctx context.Context, name string) (*models.Community, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Community), args.Error(1)
}

// ListCommunities mocks the ListCommunities method
func (m *MockCommunityRepository) ListCommunities(ctx context.Context, limit, offset int) ([]*models.Community, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Community), args.Error(1)
}

// IncrementMemberCount mocks the IncrementMemberCount method
func (m *MockCommunityRepository) IncrementMemberCount(ctx context.Context, communityID uuid.UUID, delta int) error {
	args := m.Called(ctx, communityID, delta)
	return args.Error(0)
}

// CreateMembership mocks the CreateMembership method
func (m *MockCommunityRepository) CreateMembership(ctx context.Context, membership *models.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// DeleteMembership mocks the DeleteMembership method
func (m *MockCommunityRepository) DeleteMembership(ctx context.Context, userID, communityID uuid.UUID) error {
	args := m.Called(ctx, userID, communityID)
	return args.Error(0)
}

// FindMembership mocks the FindMembership method
func (m *MockCommunityRepository) FindMembership(ctx context.Context, userID, communityID uuid.UUID) (*models.Membership, error) {
	args := m.Called(ctx, userID, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

// FindMembershipsByUser mocks the FindMembershipsByUser method
func (m *MockCommunityRepository) FindMembershipsByUser(ctx context.Context, userID uuid.UUID) ([]*models.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Membership), args.Error(1)
}

// WithTransaction mocks the WithTransaction method. When no error is
// stubbed the wrapped function runs with the same context, standing in
// for the real transaction scope.
func (m *MockCommunityRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	if fn != nil {
		return fn(ctx)
	}
	return nil
}
