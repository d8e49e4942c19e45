// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"weiblog/internal/models"
)

// CommentStore handles comment persistence. Comments are append-only:
// there are no update or single-delete operations by design.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, text, user_email, user_name, user_photo, created_at`

// ListByPost returns all comments on a post, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Text, &c.UserEmail, &c.UserName, &c.UserPhoto, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a new comment carrying a snapshot of the commenter's
// identity, and returns it with the generated ID and timestamp.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	result := &models.Comment{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, text, user_email, user_name, user_photo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns,
		c.PostID, c.Text, c.UserEmail, c.UserName, c.UserPhoto,
	).Scan(
		&result.ID, &result.PostID, &result.Text,
		&result.UserEmail, &result.UserName, &result.UserPhoto, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}
