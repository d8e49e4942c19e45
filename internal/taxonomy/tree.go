// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy builds the two-level category tree from the flat
// categories table and enforces the hierarchy rules: a category's
// parent must be a root, and a category with children cannot be
// deleted. All tree functions are pure transforms over one fetched
// snapshot — nothing here caches between requests.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"weiblog/internal/models"
)

// PrivateCategory is the reserved category name hidden from everyone
// but the owner. The filter matches this literal name: a category
// renamed away from it loses its privacy.
const PrivateCategory = "Behavioural Questions"

// Tree is the navigable form of a category snapshot. Roots appear in
// store order; ChildrenOf maps each root's ID to its children, also in
// store order. A category whose ParentID references an ID absent from
// the snapshot is an orphan: it is promoted to a root with no children
// so that no category silently disappears from navigation.
type Tree struct {
	Roots      []models.Category
	ChildrenOf map[uuid.UUID][]models.Category
}

// HasChildren reports whether the given root has any children in the tree.
func (t *Tree) HasChildren(id uuid.UUID) bool {
	return len(t.ChildrenOf[id]) > 0
}

// BuildTree partitions a flat category snapshot into roots and children.
// Every input category appears exactly once in the result: as a root,
// as some root's child, or — when its declared parent is missing — as
// an orphan promoted to root.
func BuildTree(cats []models.Category) *Tree {
	present := make(map[uuid.UUID]bool, len(cats))
	for _, c := range cats {
		present[c.ID] = true
	}

	tree := &Tree{ChildrenOf: make(map[uuid.UUID][]models.Category)}
	for _, c := range cats {
		switch {
		case c.ParentID == nil:
			tree.Roots = append(tree.Roots, c)
		case present[*c.ParentID]:
			tree.ChildrenOf[*c.ParentID] = append(tree.ChildrenOf[*c.ParentID], c)
		default:
			// Orphan: parent was deleted out from under it.
			tree.Roots = append(tree.Roots, c)
		}
	}
	return tree
}

// FilterForViewer removes the private category from a snapshot for
// non-owner viewers. For the owner it returns the input unchanged.
func FilterForViewer(cats []models.Category, isOwner bool) []models.Category {
	if isOwner {
		return cats
	}
	filtered := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if c.Name == PrivateCategory {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// CanDelete reports whether the category may be deleted: true iff no
// category in the snapshot declares it as parent. Children must be
// removed before their parent.
func CanDelete(id uuid.UUID, cats []models.Category) bool {
	for _, c := range cats {
		if c.ParentID != nil && *c.ParentID == id {
			return false
		}
	}
	return true
}

// SortedByName returns a copy of the snapshot alphabetized by name,
// case-insensitively. Used by the post editor's category selector; the
// navigation tree keeps store order.
func SortedByName(cats []models.Category) []models.Category {
	sorted := make([]models.Category, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}
