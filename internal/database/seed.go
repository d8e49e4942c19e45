package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data.
// It creates a small category tree and a welcome post if the database
// is empty. Safe to call repeatedly — it does nothing once data exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var techID string
	if err := tx.QueryRow(
		`INSERT INTO categories (name) VALUES ('Technology') RETURNING id`,
	).Scan(&techID); err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	children := []string{"Git", "Go"}
	for _, name := range children {
		if _, err := tx.Exec(
			`INSERT INTO categories (name, parent_id) VALUES ($1, $2)`, name, techID,
		); err != nil {
			return fmt.Errorf("seed insert child category: %w", err)
		}
	}

	for _, name := range []string{"Travel", "Other"} {
		if _, err := tx.Exec(`INSERT INTO categories (name) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("seed insert category: %w", err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO posts (title, content, category, is_recommended)
		VALUES ($1, $2, $3, $4)
	`, "Welcome",
		"# Hello\n\nThis blog is up and running. Sign in as the owner to write your first post.",
		"Other", true,
	); err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with starter categories and welcome post")
	return nil
}
