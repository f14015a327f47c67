// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Vote represents a user's vote on a post. At most one row exists per
// (owner, post) pair; the database enforces this with a unique
// constraint.
type Vote struct {
	ObjectId    uuid.UUID `db:"id" json:"objectId"`
	OwnerUserId uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	PostId      uuid.UUID `db:"post_id" json:"postId"`
	CommunityId uuid.UUID `db:"community_id" json:"communityId"`
	Value       int       `db:"value" json:"voteValue"` // +1 or -1, never 0
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Vote values. A stored vote is always one of these; "no vote" is the
// absence of a record, not a zero value.
const (
	ValueUp   = 1
	ValueDown = -1
)

// IsValidValue checks that a requested vote value is one of the two
// legal directions.
func IsValidValue(value int) bool {
	return value == ValueUp || value == ValueDown
}
