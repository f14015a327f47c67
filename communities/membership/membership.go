// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package membership holds the pure join/leave decision logic. It maps
// the actor's cached membership state to the mutation and counter delta
// that must land together, without touching storage.
package membership

import "fmt"

// Action is the kind of mutation a decision calls for.
type Action int

const (
	// ActionNone means the actor is already in the desired state and
	// nothing should be written
	ActionNone Action = iota
	// ActionJoin inserts a membership record
	ActionJoin
	// ActionLeave deletes the membership record
	ActionLeave
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionJoin:
		return "join"
	case ActionLeave:
		return "leave"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Decision is the outcome of a join or leave request: the record
// mutation and the member-count delta that belong in one transaction.
type Decision struct {
	Action Action
	// CounterDelta is the adjustment to the community's member counter.
	// Zero for ActionNone.
	CounterDelta int
}

// DecideJoin maps the actor's current membership state to a join
// decision. Joining a community the actor already belongs to is a
// no-op, so pressing join twice can never double-count a member.
func DecideJoin(joined bool) Decision {
	if joined {
		return Decision{Action: ActionNone}
	}
	return Decision{Action: ActionJoin, CounterDelta: 1}
}

// DecideLeave maps the actor's current membership state to a leave
// decision. Leaving a community the actor never joined is a no-op, so
// the member counter can never be driven below the true count.
func DecideLeave(joined bool) Decision {
	if !joined {
		return Decision{Action: ActionNone}
	}
	return Decision{Action: ActionLeave, CounterDelta: -1}
}
