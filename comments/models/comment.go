// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Comment represents a reply on a post. Creating or deleting one
// adjusts the owning post's comment counter in the same transaction.
type Comment struct {
	ObjectId         uuid.UUID `db:"id" json:"objectId"`
	PostId           uuid.UUID `db:"post_id" json:"postId"`
	OwnerUserId      uuid.UUID `db:"owner_user_id" json:"ownerUserId"`
	OwnerDisplayName string    `db:"owner_display_name" json:"ownerDisplayName"`
	Text             string    `db:"text" json:"text"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}
