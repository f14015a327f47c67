// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	postModels "github.com/crimsonlab/crimson/posts/models"
	postRepository "github.com/crimsonlab/crimson/posts/repository"
)

// MockPostRepositoryForVotes is a mock implementation of PostRepository
// for vote service tests
type MockPostRepositoryForVotes struct {
	mock.Mock
}

// Ensure the mock implements PostRepository
var _ postRepository.PostRepository = (*MockPostRepositoryForVotes)(nil)

// Create mocks the Create method
func (m *MockPostRepositoryForVotes) Create(ctx context.Context, post *postModels.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockPostRepositoryForVotes) FindByID(ctx context.Context, id uuid.UUID) (*postModels.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postModels.Post), args.Error(1)
}

// FindByCommunity mocks the FindByCommunity method
func (m *MockPostRepositoryForVotes) FindByCommunity(ctx context.Context, communityID uuid.UUID, limit, offset int) ([]*postModels.Post, error) {
	args := m.Called(ctx, communityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*postModels.Post), args.Error(1)
}

// FindRecent mocks the FindRecent method
func (m *MockPostRepositoryForVotes) FindRecent(ctx context.Context, limit, offset int) ([]*postModels.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*postModels.Post), args.Error(1)
}

// IncrementScore mocks the IncrementScore method
func (m *MockPostRepositoryForVotes) IncrementScore(ctx context.Context, postID uuid.UUID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

// IncrementCommentCount mocks the IncrementCommentCount method
func (m *MockPostRepositoryForVotes) IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

// WithTransaction mocks the WithTransaction method. When no error is
// stubbed the wrapped function runs with the same context, standing in
// for the real transaction scope.
func (m *MockPostRepositoryForVotes) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	if fn != nil {
		return fn(ctx)
	}
	return nil
}

// Delete mocks the Delete method
func (m *MockPostRepositoryForVotes) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
