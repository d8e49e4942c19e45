// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a reader comment on a post. The commenter's
// email, display name, and photo URL are snapshotted at posting time;
// later profile changes do not alter historical comments. Comments are
// never edited or deleted.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Text      string    `json:"text"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	UserPhoto string    `json:"user_photo"`
	CreatedAt time.Time `json:"created_at"`
}
