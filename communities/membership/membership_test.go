// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideJoin(t *testing.T) {
	d := DecideJoin(false)
	assert.Equal(t, ActionJoin, d.Action)
	assert.Equal(t, 1, d.CounterDelta)

	d = DecideJoin(true)
	assert.Equal(t, ActionNone, d.Action)
	assert.Equal(t, 0, d.CounterDelta)
}

func TestDecideLeave(t *testing.T) {
	d := DecideLeave(true)
	assert.Equal(t, ActionLeave, d.Action)
	assert.Equal(t, -1, d.CounterDelta)

	d = DecideLeave(false)
	assert.Equal(t, ActionNone, d.Action)
	assert.Equal(t, 0, d.CounterDelta)
}

// Any interleaving of join and leave presses keeps the counter delta
// equal to the membership state transition, so the count can never go
// negative from repeated presses.
func TestDecide_PressSequence(t *testing.T) {
	joined := false
	count := 0

	apply := func(d Decision) {
		switch d.Action {
		case ActionJoin:
			joined = true
		case ActionLeave:
			joined = false
		}
		count += d.CounterDelta
	}

	apply(DecideLeave(joined)) // leave before ever joining
	assert.Equal(t, 0, count)

	apply(DecideJoin(joined))
	apply(DecideJoin(joined)) // double press
	assert.Equal(t, 1, count)
	assert.True(t, joined)

	apply(DecideLeave(joined))
	apply(DecideLeave(joined)) // double press
	assert.Equal(t, 0, count)
	assert.False(t, joined)
}
