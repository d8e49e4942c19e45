// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"weiblog/internal/models"
)

// CategoryStore is the slice of the storage layer the taxonomy service
// needs. Satisfied by *store.CategoryStore.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service wraps category mutations with the hierarchy invariants the
// store itself does not enforce. Checks run against the snapshot
// fetched at call time; a concurrent writer can still race past them —
// an accepted weak guarantee at this system's scale.
type Service struct {
	cats CategoryStore
}

// NewService creates a taxonomy service over the given category store.
func NewService(cats CategoryStore) *Service {
	return &Service{cats: cats}
}

// AddCategory creates a category after trimming and validating the
// name. parentID, when set, should reference an existing root; that is
// a caller contract, not checked here, matching the store's own
// schema-free acceptance of any parent value.
func (s *Service) AddCategory(ctx context.Context, name string, parentID *uuid.UUID) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("category name is required")
	}

	created, err := s.cats.Create(ctx, &models.Category{Name: name, ParentID: parentID})
	if err != nil {
		return nil, models.NewStoreError("could not save category", err)
	}
	return created, nil
}

// DeleteCategory removes a category, refusing while it still has
// children. The caller must refetch its category snapshot afterwards;
// no incremental local update is guaranteed consistent under
// concurrent writers.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	cats, err := s.cats.List(ctx)
	if err != nil {
		return models.NewStoreError("could not load categories", err)
	}

	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return models.NewNotFoundError("category does not exist")
	}

	if !CanDelete(id, cats) {
		return models.NewConstraintError("category still has sub-categories; delete them first")
	}

	if err := s.cats.Delete(ctx, id); err != nil {
		return models.NewStoreError("could not delete category", err)
	}
	return nil
}
