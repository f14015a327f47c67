// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	communityModels "github.com/crimsonlab/crimson/communities/models"
	communityRepository "github.com/crimsonlab/crimson/communities/repository"
)

// MockCommunityRepositoryForPosts is a mock implementation of
// CommunityRepository for post service tests
type MockCommunityRepositoryForPosts struct {
	mock.Mock
}

// Ensure the mock implements CommunityRepository
var _ communityRepository.CommunityRepository = (*MockCommunityRepositoryForPosts)(nil)

// CreateCommunity mocks the CreateCommunity method
func (m *MockCommunityRepositoryForPosts) CreateCommunity(ctx context.Context, community *communityModels.Community) error {
	args := m.Called(ctx, community)
	return args.Error(0)
}

// FindCommunityByID mocks the FindCommunityByID method
func (m *MockCommunityRepositoryForPosts) FindCommunityByID(ctx context.Context, id uuid.UUID) (*communityModels.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*communityModels.Community), args.Error(1)
}

// FindCommunityByName mocks the FindCommunityByName method
func (m *MockCommunityRepositoryForPosts) FindCommunityByName(ctx context.Context, name string) (*communityModels.Community, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*communityModels.Community), args.Error(1)
}

// ListCommunities mocks the ListCommunities method
func (m *MockCommunityRepositoryForPosts) ListCommunities(ctx context.Context, limit, offset int) ([]*communityModels.Community, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*communityModels.Community), args.Error(1)
}

// IncrementMemberCount mocks the IncrementMemberCount method
func (m *MockCommunityRepositoryForPosts) IncrementMemberCount(ctx context.Context, communityID uuid.UUID, delta int) error {
	args := m.Called(ctx, communityID, delta)
	return args.Error(0)
}

// CreateMembership mocks the CreateMembership method
func (m *MockCommunityRepositoryForPosts) CreateMembership(ctx context.Context, membership *communityModels.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// DeleteMembership mocks the DeleteMembership method
func (m *MockCommunityRepositoryForPosts) DeleteMembership(ctx context.Context, userID, communityID uuid.UUID) error {
	args := m.Called(ctx, userID, communityID)
	return args.Error(0)
}

// FindMembership mocks the FindMembership method
func (m *MockCommunityRepositoryForPosts) FindMembership(ctx context.Context, userID, communityID uuid.UUID) (*communityModels.Membership, error) {
	args := m.Called(ctx, userID, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*communityModels.Membership), args.Error(1)
}

// FindMembershipsByUser mocks the FindMembershipsByUser method
func (m *MockCommunityRepositoryForPosts) FindMembershipsByUser(ctx context.Context, userID uuid.UUID) ([]*communityModels.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*communityModels.Membership), args.Error(1)
}

// WithTransaction mocks the WithTransaction method
func (m *MockCommunityRepositoryForPosts) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	if fn != nil {
		return fn(ctx)
	}
	return nil
}
