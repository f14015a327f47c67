// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_CreateWhenNoVote(t *testing.T) {
	d, err := Decide(0, 1)
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, d.Action)
	assert.Equal(t, 1, d.Value)
	assert.Equal(t, 1, d.ScoreDelta)

	d, err = Decide(0, -1)
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, d.Action)
	assert.Equal(t, -1, d.Value)
	assert.Equal(t, -1, d.ScoreDelta)
}

func TestDecide_RemoveWhenSameDirection(t *testing.T) {
	d, err := Decide(1, 1)
	require.NoError(t, err)
	assert.Equal(t, ActionRemove, d.Action)
	assert.Equal(t, -1, d.ScoreDelta)

	d, err = Decide(-1, -1)
	require.NoError(t, err)
	assert.Equal(t, ActionRemove, d.Action)
	assert.Equal(t, 1, d.ScoreDelta)
}

func TestDecide_FlipWhenOppositeDirection(t *testing.T) {
	d, err := Decide(-1, 1)
	require.NoError(t, err)
	assert.Equal(t, ActionFlip, d.Action)
	assert.Equal(t, 1, d.Value)
	assert.Equal(t, 2, d.ScoreDelta)

	d, err = Decide(1, -1)
	require.NoError(t, err)
	assert.Equal(t, ActionFlip, d.Action)
	assert.Equal(t, -1, d.Value)
	assert.Equal(t, -2, d.ScoreDelta)
}

func TestDecide_RejectsInvalidRequest(t *testing.T) {
	for _, requested := range []int{0, 2, -2, 10} {
		_, err := Decide(0, requested)
		assert.ErrorIs(t, err, ErrInvalidValue, "requested %d", requested)
	}
}

func TestDecide_RejectsCorruptStoredValue(t *testing.T) {
	_, err := Decide(3, 1)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

// A press followed by the same press returns the score to where it
// started, for both directions and from both starting states.
func TestDecide_ToggleIsScoreNeutral(t *testing.T) {
	for _, v := range []int{1, -1} {
		first, err := Decide(0, v)
		require.NoError(t, err)
		second, err := Decide(first.Value, v)
		require.NoError(t, err)
		assert.Equal(t, 0, first.ScoreDelta+second.ScoreDelta)
	}
}

// Flipping is equivalent to removing the old vote and creating the new
// one: the delta equals the sum of the two individual deltas.
func TestDecide_FlipEqualsRemovePlusCreate(t *testing.T) {
	for _, v := range []int{1, -1} {
		flip, err := Decide(-v, v)
		require.NoError(t, err)

		remove, err := Decide(-v, -v)
		require.NoError(t, err)
		create, err := Decide(0, v)
		require.NoError(t, err)

		assert.Equal(t, remove.ScoreDelta+create.ScoreDelta, flip.ScoreDelta)
	}
}

// The worked scenario: up, up again, down, down again ends at zero.
func TestDecide_PressSequence(t *testing.T) {
	score := 0
	current := 0

	steps := []struct {
		press     int
		wantScore int
		wantVote  int
	}{
		{press: 1, wantScore: 1, wantVote: 1},
		{press: 1, wantScore: 0, wantVote: 0},
		{press: -1, wantScore: -1, wantVote: -1},
		{press: -1, wantScore: 0, wantVote: 0},
	}

	for i, step := range steps {
		d, err := Decide(current, step.press)
		require.NoError(t, err, "step %d", i)

		score += d.ScoreDelta
		if d.Action == ActionRemove {
			current = 0
		} else {
			current = d.Value
		}

		assert.Equal(t, step.wantScore, score, "step %d score", i)
		assert.Equal(t, step.wantVote, current, "step %d vote", i)
	}
}
