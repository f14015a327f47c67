// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Privacy types a community can be created with.
const (
	PrivacyPublic     = "public"
	PrivacyRestricted = "restricted"
	PrivacyPrivate    = "private"
)

// Community represents a discussion board. MemberCount is a
// denormalized counter kept in step with the membership rows; it
// changes only inside the same transaction as the membership record.
type Community struct {
	ObjectId    uuid.UUID `db:"id" json:"objectId"`
	Name        string    `db:"name" json:"name"`
	CreatorId   uuid.UUID `db:"creator_id" json:"creatorId"`
	MemberCount int64     `db:"member_count" json:"memberCount"`
	PrivacyType string    `db:"privacy_type" json:"privacyType"`
	ImageURL    string    `db:"image_url" json:"imageURL"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// IsValidPrivacyType checks a requested privacy type.
func IsValidPrivacyType(privacyType string) bool {
	switch privacyType {
	case PrivacyPublic, PrivacyRestricted, PrivacyPrivate:
		return true
	}
	return false
}

// Membership records that a user belongs to a community. At most one
// row exists per (user, community) pair, enforced by a unique
// constraint.
type Membership struct {
	ObjectId    uuid.UUID `db:"id" json:"objectId"`
	UserId      uuid.UUID `db:"user_id" json:"userId"`
	CommunityId uuid.UUID `db:"community_id" json:"communityId"`
	IsModerator bool      `db:"is_moderator" json:"isModerator"`
	ImageURL    string    `db:"image_url" json:"imageURL"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
