// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database
// tables and the error kinds shared across the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post. Category holds the category *name*, not
// its ID — a deliberately loose link: deleting or renaming a category
// leaves existing posts with the stale name rather than cascading.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"` // Markdown source
	Category      string    `json:"category"`
	IsRecommended bool      `json:"is_recommended"`
	CreatedAt     time.Time `json:"created_at"`
}
