// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Post represents a discussion-board post. Score and CommentCount are
// denormalized counters; they change only inside the same transaction
// as the vote or comment record that justifies the change.
type Post struct {
	ObjectId         uuid.UUID `db:"id" json:"objectId"`
	CommunityId      uuid.UUID `db:"community_id" json:"communityId"`
	OwnerUserId      uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	OwnerDisplayName string    `db:"owner_display_name" json:"ownerDisplayName"`
	Title            string    `db:"title" json:"title"`
	Body             string    `db:"body" json:"body"`
	Score            int64     `db:"score" json:"score"`
	CommentCount     int64     `db:"comment_count" json:"commentCount"`
	ImageURL         string    `db:"image_url" json:"imageURL"`
	CommunityImage   string    `db:"community_image" json:"communityImage"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}
