// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/internal/localcache"
	postRepository "github.com/crimsonlab/crimson/posts/repository"
	"github.com/crimsonlab/crimson/votes/engine"
	votesErrors "github.com/crimsonlab/crimson/votes/errors"
	"github.com/crimsonlab/crimson/votes/models"
	voteRepository "github.com/crimsonlab/crimson/votes/repository"
)

// VoteService defines the interface for vote operations
type VoteService interface {
	// Vote applies one press of the up or down control for the actor.
	// It decides what the press means from the locally cached vote
	// state, commits the record change and the score delta in one
	// transaction, and only then folds the same delta into the cache.
	Vote(ctx context.Context, userID, postID, communityID uuid.UUID, value int) error

	// LoadVotes warms the local cache with the actor's stored votes and
	// returns them.
	LoadVotes(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error)

	// ClearVotes drops the actor's cached votes on sign-out.
	ClearVotes(userID uuid.UUID)

	// GetVotesForPosts returns the actor's vote directions for a set of
	// posts, 0 where no vote exists.
	GetVotesForPosts(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]int, error)
}

// voteService implements the VoteService interface
type voteService struct {
	voteRepo voteRepository.VoteRepository
	postRepo postRepository.PostRepository
	cache    *localcache.Store
}

// NewVoteService creates a new instance of the vote service
func NewVoteService(voteRepo voteRepository.VoteRepository, postRepo postRepository.PostRepository, cache *localcache.Store) VoteService {
	return &voteService{
		voteRepo: voteRepo,
		postRepo: postRepo,
		cache:    cache,
	}
}

// Vote applies one press of the up or down control.
//
// The decision is made from the cached vote state, never from a store
// read, so the handler path stays read-free. When the store rejects the
// write because another device created a vote first, the cache is
// refreshed from the store and the press is retried exactly once
// against the fresh state.
func (s *voteService) Vote(ctx context.Context, userID, postID, communityID uuid.UUID, value int) error {
	if userID == uuid.Nil {
		return votesErrors.ErrUnauthenticated
	}

	err := s.voteOnce(ctx, userID, postID, communityID, value)
	if !errors.Is(err, voteRepository.ErrDuplicateVote) {
		return err
	}

	// The cache said "no vote" but the store has one. Refresh the
	// cached record and re-decide against reality.
	actual, findErr := s.voteRepo.FindByUserAndPost(ctx, userID, postID)
	if findErr != nil {
		return fmt.Errorf("failed to refresh vote after conflict: %w", findErr)
	}
	s.cache.SetVote(userID, postID, actual)

	err = s.voteOnce(ctx, userID, postID, communityID, value)
	if errors.Is(err, voteRepository.ErrDuplicateVote) {
		return fmt.Errorf("%w: %v", votesErrors.ErrVoteConflict, err)
	}
	return err
}

// voteOnce makes one decision from the cache and executes it.
func (s *voteService) voteOnce(ctx context.Context, userID, postID, communityID uuid.UUID, value int) error {
	current := s.cache.VoteFor(userID, postID)
	currentValue := 0
	if current != nil {
		currentValue = current.Value
	}

	decision, err := engine.Decide(currentValue, value)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidValue) {
			return fmt.Errorf("%w: %v", votesErrors.ErrInvalidVoteValue, err)
		}
		return err
	}

	var committed *models.Vote

	err = s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		switch decision.Action {
		case engine.ActionCreate:
			voteID, err := uuid.NewV4()
			if err != nil {
				return fmt.Errorf("failed to generate vote ID: %w", err)
			}
			newVote := &models.Vote{
				ObjectId:    voteID,
				OwnerUserId: userID,
				PostId:      postID,
				CommunityId: communityID,
				Value:       decision.Value,
			}
			if err := s.voteRepo.Create(txCtx, newVote); err != nil {
				return err
			}
			committed = newVote

		case engine.ActionRemove:
			if err := s.voteRepo.Delete(txCtx, current.ObjectId); err != nil {
				return fmt.Errorf("failed to delete vote: %w", err)
			}
			committed = nil

		case engine.ActionFlip:
			if err := s.voteRepo.UpdateValue(txCtx, current.ObjectId, decision.Value); err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
			flipped := *current
			flipped.Value = decision.Value
			committed = &flipped
		}

		// Score moves in the same transaction as the record.
		if err := s.postRepo.IncrementScore(txCtx, postID, decision.ScoreDelta); err != nil {
			return fmt.Errorf("failed to increment post score: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// The store accepted the whole transaction, so the identical delta
	// lands in the cache.
	s.cache.CommitVote(userID, postID, committed, decision.ScoreDelta)
	return nil
}

// LoadVotes warms the local cache with the actor's stored votes
func (s *voteService) LoadVotes(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error) {
	if userID == uuid.Nil {
		return nil, votesErrors.ErrUnauthenticated
	}

	votes, err := s.voteRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	s.cache.ReplaceVotes(userID, votes)
	return votes, nil
}

// ClearVotes drops the actor's cached votes
func (s *voteService) ClearVotes(userID uuid.UUID) {
	s.cache.ClearVotes(userID)
}

// GetVotesForPosts returns the actor's vote directions for a set of posts
func (s *voteService) GetVotesForPosts(ctx context.Context, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]int, error) {
	return s.voteRepo.GetVotesForPosts(ctx, postIDs, userID)
}
