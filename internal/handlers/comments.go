// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weiblog/internal/cache"
	"weiblog/internal/metrics"
	"weiblog/internal/middleware"
	"weiblog/internal/models"
	"weiblog/internal/store"
	"weiblog/internal/taxonomy"
)

// Comments handles comment submission. Routes using it are gated by
// RequireAuth, so a session is always present here.
type Comments struct {
	comments   *store.CommentStore
	posts      *store.PostStore
	pageCache  *cache.PageCache
	collector  *metrics.Collector
	ownerEmail string
}

// NewComments creates the comments handler group.
func NewComments(comments *store.CommentStore, posts *store.PostStore, pageCache *cache.PageCache, collector *metrics.Collector, ownerEmail string) *Comments {
	return &Comments{
		comments:   comments,
		posts:      posts,
		pageCache:  pageCache,
		collector:  collector,
		ownerEmail: ownerEmail,
	}
}

// Create appends a comment to a post, snapshotting the commenter's
// identity as it is right now.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess := middleware.SessionFromCtx(ctx)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.posts.FindByID(ctx, id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}
	if post.Category == taxonomy.PrivateCategory && !isOwner(sess, h.ownerEmail) {
		http.NotFound(w, r)
		return
	}

	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		// Nothing to store; just go back to the post.
		http.Redirect(w, r, "/post/"+id.String(), http.StatusSeeOther)
		return
	}

	if _, err := h.comments.Create(ctx, &models.Comment{
		PostID:    id,
		Text:      text,
		UserEmail: sess.Email,
		UserName:  sess.DisplayName,
		UserPhoto: sess.PhotoURL,
	}); err != nil {
		slog.Error("create comment failed", "error", err, "post_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if h.collector != nil {
		h.collector.RecordCommentPosted()
	}

	// The anonymous rendering of this post page includes comments.
	h.pageCache.InvalidateAll(ctx)

	http.Redirect(w, r, "/post/"+id.String(), http.StatusSeeOther)
}
