// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weiblog/internal/cache"
	"weiblog/internal/models"
	"weiblog/internal/render"
	"weiblog/internal/store"
	"weiblog/internal/taxonomy"
)

// Categories groups the owner-only category management handlers. The
// tree rules (two levels, children block deletion) live in the taxonomy
// service; these handlers translate its errors into page messages.
type Categories struct {
	service    *taxonomy.Service
	categories *store.CategoryStore
	renderer   *render.Renderer
	pageCache  *cache.PageCache
	siteName   string
}

// NewCategories creates the category management handler group.
func NewCategories(service *taxonomy.Service, categories *store.CategoryStore, renderer *render.Renderer, pageCache *cache.PageCache, siteName string) *Categories {
	return &Categories{
		service:    service,
		categories: categories,
		renderer:   renderer,
		pageCache:  pageCache,
		siteName:   siteName,
	}
}

// Manage renders the category manager page.
func (h *Categories) Manage(w http.ResponseWriter, r *http.Request) {
	h.renderManage(w, r, "")
}

func (h *Categories) renderManage(w http.ResponseWriter, r *http.Request, errMsg string) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "categories", &render.PageData{
		Title:    "Categories",
		SiteName: h.siteName,
		IsOwner:  true,
		Data: map[string]any{
			"Tree":  taxonomy.BuildTree(cats),
			"Error": errMsg,
		},
	})
}

// Create adds a category, optionally under a parent.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var parentID *uuid.UUID
	if raw := r.FormValue("parent_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.renderManage(w, r, "Invalid parent category.")
			return
		}
		parentID = &id
	}

	if _, err := h.service.AddCategory(ctx, r.FormValue("name"), parentID); err != nil {
		var domainErr *models.Error
		if errors.As(err, &domainErr) && domainErr.Kind == models.KindValidation {
			h.renderManage(w, r, domainErr.Message)
			return
		}
		slog.Error("add category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(ctx)
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// Delete removes a category. Categories that still have children are
// refused with an explanation instead of a hard error.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.DeleteCategory(ctx, id); err != nil {
		switch models.KindOf(err) {
		case models.KindNotFound:
			http.NotFound(w, r)
		case models.KindConstraint:
			var domainErr *models.Error
			errors.As(err, &domainErr)
			h.renderManage(w, r, domainErr.Message)
		default:
			slog.Error("delete category failed", "error", err, "id", id)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	h.pageCache.InvalidateAll(ctx)
	slog.Info("category deleted", "id", id)
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
