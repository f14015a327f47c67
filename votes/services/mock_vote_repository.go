// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/crimsonlab/crimson/votes/models"
	voteRepository "github.com/crimsonlab/crimson/votes/repository"
)

// MockVoteRepository is a mock implementation of VoteRepository for testing
type MockVoteRepository struct {
	mock.Mock
}

// Ensure MockVoteRepository implements VoteRepository
var _ voteRepository.VoteRepository = (*MockVoteRepository)(nil)

// Create mocks the Create method
func (m *MockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

// UpdateValue mocks the UpdateValue method
func (m *MockVoteRepository) UpdateValue(ctx context.Context, voteID uuid.UUID, value int) error {
	args := m.Called(ctx, voteID, value)
	return args.Error(0)
}

// Delete mocks the Delete method
func (m *MockVoteRepository) Delete(ctx context.Context, voteID uuid.UUID) error {
	args := m.Called(ctx, voteID)
	return args.Error(0)
}

// FindByUserAndPost mocks the FindByUserAndPost method
func (m *MockVoteRepository) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Vote, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

// FindByUser mocks the FindByUser method
func (m *MockVoteRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vote), args.Error(1)
}

// GetVotesForPosts mocks the GetVotesForPosts method
func (m *MockVoteRepository) GetVotesForPosts(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, postIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}
