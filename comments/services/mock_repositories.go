// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/crimsonlab/crimson/comments/models"
	"github.com/crimsonlab/crimson/comments/repository"
	postModels "github.com/crimsonlab/crimson/posts/models"
	postRepository "github.com/crimsonlab/crimson/posts/repository"
)

// MockCommentRepository is a mock implementation of CommentRepository
// for testing
type MockCommentRepository struct {
	mock.Mock
}

// Ensure MockCommentRepository implements CommentRepository
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

// Create mocks the Create method
func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

// FindByPost mocks the FindByPost method
func (m *MockCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, postID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPostRepositoryForComments is a mock implementation of
// PostRepository for comment service tests
type MockPostRepositoryForComments struct {
	mock.Mock
}

// Ensure the mock implements PostRepository
var _ postRepository.PostRepository = (*MockPostRepositoryForComments)(nil)

// Create mocks the Create method
func (m *MockPostRepositoryForComments) Create(ctx context.Context, post *postModels.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockPostRepositoryForComments) FindByID(ctx context.Context, id uuid.UUID) (*postModels.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postModels.Post), args.Error(1)
}

// FindByCommunity mocks the FindByCommunity method
func (m *MockPostRepositoryForComments) FindByCommunity(ctx context.Context, communityID uuid.UUID, limit, offset int) ([]*postModels.Post, error) {
	args := m.Called(ctx, communityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*postModels.Post), args.Error(1)
}

// FindRecent mocks the FindRecent method
func (m *MockPostRepositoryForComments) FindRecent(ctx context.Context, limit, offset int) ([]*postModels.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*postModels.Post), args.Error(1)
}

// IncrementScore mocks the IncrementScore method
func (m *MockPostRepositoryForComments) IncrementScore(ctx context.Context, postID uuid.UUID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

// IncrementCommentCount mocks the IncrementCommentCount method
func (m *MockPostRepositoryForComments) IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

// WithTransaction mocks the WithTransaction method
func (m *MockPostRepositoryForComments) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
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
func (m *MockPostRepositoryForComments) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
