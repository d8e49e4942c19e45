// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers for the blog: the
// public reading pages, the Google sign-in flow, comments, and the
// owner's post and category management.
package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"weiblog/internal/listing"
	"weiblog/internal/models"
	"weiblog/internal/session"
	"weiblog/internal/store"
	"weiblog/internal/taxonomy"
)

// CategoryOption is one entry of the category <select> on the post
// forms: categories alphabetized within their level, children indented
// under their parent.
type CategoryOption struct {
	Name  string
	Depth int
}

// isOwner reports whether the session belongs to the configured owner.
func isOwner(sess *session.Data, ownerEmail string) bool {
	return sess != nil && ownerEmail != "" && sess.Email == ownerEmail
}

// parsePage extracts the ?page= query parameter, defaulting to 1.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageLinks builds the previous/next pagination URLs for a listing
// page, preserving any extra query parameters (like the search term).
// An empty string means there is no page in that direction.
func pageLinks(path string, extra url.Values, pg listing.Page) (prev, next string) {
	build := func(n int) string {
		q := url.Values{}
		for k, vs := range extra {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(n))
		return path + "?" + q.Encode()
	}
	if pg.Number > 1 {
		prev = build(pg.Number - 1)
	}
	if pg.Number < pg.TotalPages {
		next = build(pg.Number + 1)
	}
	return prev, next
}

// categoryOptions flattens the category tree into selector entries:
// roots alphabetized, each followed by its alphabetized children.
func categoryOptions(cats []models.Category) []CategoryOption {
	tree := taxonomy.BuildTree(taxonomy.SortedByName(cats))

	opts := make([]CategoryOption, 0, len(cats))
	for _, root := range tree.Roots {
		opts = append(opts, CategoryOption{Name: root.Name, Depth: 0})
		for _, child := range tree.ChildrenOf[root.ID] {
			opts = append(opts, CategoryOption{Name: child.Name, Depth: 1})
		}
	}
	return opts
}

// categoryExists reports whether name is one of the given categories.
func categoryExists(cats []models.Category, name string) bool {
	for _, c := range cats {
		if c.Name == name {
			return true
		}
	}
	return false
}

// sidebarData loads the category tree and recommended posts shown in
// the listing sidebar, filtered for the current viewer.
func sidebarData(ctx context.Context, categories *store.CategoryStore, visible []models.Post, owner bool) (map[string]any, error) {
	cats, err := categories.List(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"Tree":        taxonomy.BuildTree(taxonomy.FilterForViewer(cats, owner)),
		"Recommended": listing.Recommended(visible),
	}, nil
}
