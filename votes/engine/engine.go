// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package engine holds the pure vote state machine. It decides what a
// vote request means given the actor's current vote, without touching
// storage or cache; the service layer executes the decision.
package engine

import (
	"errors"
	"fmt"

	"github.com/crimsonlab/crimson/votes/models"
)

// Action is the kind of mutation a decision calls for.
type Action int

const (
	// ActionCreate inserts a new vote record
	ActionCreate Action = iota
	// ActionRemove deletes the existing vote record (same direction
	// pressed again)
	ActionRemove
	// ActionFlip rewrites the existing record to the opposite direction
	ActionFlip
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRemove:
		return "remove"
	case ActionFlip:
		return "flip"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Decision is the full outcome of a vote request: the record mutation
// and the score delta that must land in the same transaction.
type Decision struct {
	Action Action
	// Value is the direction to store. Zero for ActionRemove.
	Value int
	// ScoreDelta is the adjustment to the post's score counter.
	ScoreDelta int
}

// ErrInvalidValue is returned when the requested direction is not one
// of the two legal vote values.
var ErrInvalidValue = errors.New("vote value must be +1 or -1")

// Decide maps (current vote, requested direction) to a decision.
// current is the actor's stored vote value, or zero when no record
// exists. The mapping is total over valid inputs:
//
//	no vote  + v  ->  create v,  score +v
//	vote v   + v  ->  remove,    score -v
//	vote -v  + v  ->  flip to v, score +2v
//
// Removing then re-creating is therefore score-neutral, and a flip
// moves the score by twice the direction, never leaving a zero-valued
// record behind.
func Decide(current, requested int) (Decision, error) {
	if !models.IsValidValue(requested) {
		return Decision{}, ErrInvalidValue
	}

	switch current {
	case 0:
		return Decision{Action: ActionCreate, Value: requested, ScoreDelta: requested}, nil
	case requested:
		return Decision{Action: ActionRemove, ScoreDelta: -requested}, nil
	case -requested:
		return Decision{Action: ActionFlip, Value: requested, ScoreDelta: 2 * requested}, nil
	}

	return Decision{}, fmt.Errorf("%w: stored vote has value %d", ErrInvalidValue, current)
}
