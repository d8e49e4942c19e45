// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weiblog/internal/cache"
	"weiblog/internal/models"
	"weiblog/internal/render"
	"weiblog/internal/store"
)

// Posts groups the owner-only post management handlers. Every mutation
// flushes the page cache so anonymous readers never see stale listings.
type Posts struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	renderer   *render.Renderer
	pageCache  *cache.PageCache
	siteName   string
}

// NewPosts creates the post management handler group.
func NewPosts(posts *store.PostStore, categories *store.CategoryStore, renderer *render.Renderer, pageCache *cache.PageCache, siteName string) *Posts {
	return &Posts{
		posts:      posts,
		categories: categories,
		renderer:   renderer,
		pageCache:  pageCache,
		siteName:   siteName,
	}
}

// CreateForm renders the new-post form.
func (h *Posts) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderCreateForm(w, r, "", "", "", "")
}

func (h *Posts) renderCreateForm(w http.ResponseWriter, r *http.Request, title, content, category, errMsg string) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "create", &render.PageData{
		Title:    "New Post",
		SiteName: h.siteName,
		IsOwner:  true,
		Data: map[string]any{
			"Title":            title,
			"Content":          content,
			"SelectedCategory": category,
			"CategoryOptions":  categoryOptions(cats),
			"Error":            errMsg,
		},
	})
}

// Create handles the new-post form submission.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	title := strings.TrimSpace(r.FormValue("title"))
	content := r.FormValue("content")
	category := r.FormValue("category")

	if errMsg := h.validatePost(ctx, title, category); errMsg != "" {
		h.renderCreateForm(w, r, title, content, category, errMsg)
		return
	}

	post, err := h.posts.Create(ctx, &models.Post{
		Title:    title,
		Content:  content,
		Category: category,
	})
	if err != nil {
		slog.Error("create post failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(ctx)
	slog.Info("post created", "id", post.ID, "title", post.Title)
	http.Redirect(w, r, "/post/"+post.ID.String(), http.StatusSeeOther)
}

// EditForm renders the edit form for an existing post.
func (h *Posts) EditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.findPost(w, r)
	if !ok {
		return
	}

	cats, err := h.categories.List(ctx)
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "edit", &render.PageData{
		Title:    "Edit Post",
		SiteName: h.siteName,
		IsOwner:  true,
		Data: map[string]any{
			"Post":            *post,
			"CategoryOptions": categoryOptions(cats),
			"Error":           "",
		},
	})
}

// Update handles the edit form submission.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.findPost(w, r)
	if !ok {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := r.FormValue("content")
	category := r.FormValue("category")

	if errMsg := h.validatePost(ctx, title, category); errMsg != "" {
		cats, err := h.categories.List(ctx)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		post.Title = title
		post.Content = content
		h.renderer.Page(w, r, "edit", &render.PageData{
			Title:    "Edit Post",
			SiteName: h.siteName,
			IsOwner:  true,
			Data: map[string]any{
				"Post":            *post,
				"CategoryOptions": categoryOptions(cats),
				"Error":           errMsg,
			},
		})
		return
	}

	post.Title = title
	post.Content = content
	post.Category = category
	if err := h.posts.Update(ctx, post); err != nil {
		slog.Error("update post failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(ctx)
	http.Redirect(w, r, "/post/"+post.ID.String(), http.StatusSeeOther)
}

// Delete removes a post and its comments.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.findPost(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(ctx, post.ID); err != nil {
		slog.Error("delete post failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(ctx)
	slog.Info("post deleted", "id", post.ID, "title", post.Title)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Recommend toggles the recommended flag on a post.
func (h *Posts) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.findPost(w, r)
	if !ok {
		return
	}

	if err := h.posts.SetRecommended(ctx, post.ID, !post.IsRecommended); err != nil {
		slog.Error("toggle recommended failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pageCache.InvalidateAll(ctx)
	http.Redirect(w, r, "/post/"+post.ID.String(), http.StatusSeeOther)
}

// findPost resolves the {id} route parameter to a post, writing the
// error response itself when it can't.
func (h *Posts) findPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if post == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return post, true
}

// validatePost checks the shared form constraints. The category must be
// one the taxonomy actually knows.
func (h *Posts) validatePost(ctx context.Context, title, category string) string {
	if title == "" {
		return "Title is required."
	}
	if category == "" {
		return "Choose a category."
	}
	cats, err := h.categories.List(ctx)
	if err != nil {
		slog.Error("list categories failed", "error", err)
		return "Could not verify the category. Try again."
	}
	if !categoryExists(cats, category) {
		return "Unknown category."
	}
	return ""
}
