// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing produces the ordered, paginated, and permission-aware
// post sequences behind the home feed, category feed, and search. All
// functions are pure transforms over a snapshot the caller has already
// fetched; none of them touch the store.
package listing

import (
	"sort"
	"strings"

	"weiblog/internal/models"
	"weiblog/internal/taxonomy"
)

// PageSize is the number of posts shown per page.
const PageSize = 6

// Page is one page of a paginated post sequence.
type Page struct {
	Items      []models.Post
	Number     int // 1-based, clamped into [1, TotalPages]
	TotalPages int
}

// All returns the snapshot ordered by timestamp descending. Non-owner
// viewers never see posts filed under the private category. Posts with
// equal timestamps keep their store order — timestamps carry
// sub-second precision, so real ties are negligible.
func All(posts []models.Post, isOwner bool) []models.Post {
	visible := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !isOwner && p.Category == taxonomy.PrivateCategory {
			continue
		}
		visible = append(visible, p)
	}
	sortByTimeDesc(visible)
	return visible
}

// ByCategory returns the posts filed under the named category, newest
// first. The private-category authorization gate is the caller's job:
// a non-owner asking for the private name must be redirected before
// listing, so "forbidden" is never confused with "empty".
func ByCategory(posts []models.Post, categoryName string) []models.Post {
	matched := make([]models.Post, 0)
	for _, p := range posts {
		if p.Category == categoryName {
			matched = append(matched, p)
		}
	}
	sortByTimeDesc(matched)
	return matched
}

// Recommended returns the posts the owner marked as recommended,
// newest first.
func Recommended(posts []models.Post) []models.Post {
	picked := make([]models.Post, 0)
	for _, p := range posts {
		if p.IsRecommended {
			picked = append(picked, p)
		}
	}
	sortByTimeDesc(picked)
	return picked
}

// Search returns posts whose title or content contains term,
// case-insensitively. An empty or whitespace-only term means "no
// search" and yields nothing, not everything. This is a linear scan
// over the full snapshot — fine at personal-blog scale, a known limit
// beyond it.
func Search(posts []models.Post, term string) []models.Post {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []models.Post{}
	}

	matched := make([]models.Post, 0)
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Content), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Paginate slices an ordered post sequence into the requested 1-based
// page. Out-of-range page numbers clamp into [1, TotalPages] rather
// than erroring; an empty sequence yields one empty page.
func Paginate(posts []models.Post, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}

	totalPages := (len(posts) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return Page{Items: posts[start:end], Number: page, TotalPages: totalPages}
}

// sortByTimeDesc orders posts newest-first in place, keeping store
// order for equal timestamps.
func sortByTimeDesc(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
