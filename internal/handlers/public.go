// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weiblog/internal/cache"
	"weiblog/internal/listing"
	"weiblog/internal/markdown"
	"weiblog/internal/metrics"
	"weiblog/internal/middleware"
	"weiblog/internal/render"
	"weiblog/internal/store"
	"weiblog/internal/taxonomy"
)

// Public groups the reading-side handlers. Pages rendered for anonymous
// visitors go through the Valkey page cache; signed-in visitors always
// hit the database so owner-only content never lands in the shared
// cache.
type Public struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	comments   *store.CommentStore
	renderer   *render.Renderer
	pageCache  *cache.PageCache
	collector  *metrics.Collector
	siteName   string
	ownerEmail string
}

// NewPublic creates the public handler group.
func NewPublic(posts *store.PostStore, categories *store.CategoryStore, comments *store.CommentStore, renderer *render.Renderer, pageCache *cache.PageCache, collector *metrics.Collector, siteName, ownerEmail string) *Public {
	return &Public{
		posts:      posts,
		categories: categories,
		comments:   comments,
		renderer:   renderer,
		pageCache:  pageCache,
		collector:  collector,
		siteName:   siteName,
		ownerEmail: ownerEmail,
	}
}

// serveCached writes a cached page if one exists for the key. Only used
// for anonymous requests.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	cached, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		if p.collector != nil {
			p.collector.RecordCacheMiss()
		}
		return false
	}
	if p.collector != nil {
		p.collector.RecordCacheHit()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// writeAndCache renders a page, writes it, and stores it under the key
// when the request is anonymous.
func (p *Public) writeAndCache(w http.ResponseWriter, r *http.Request, key, tmpl string, data *render.PageData) {
	anonymous := middleware.SessionFromCtx(r.Context()) == nil

	if !anonymous {
		p.renderer.Page(w, r, tmpl, data)
		return
	}

	html, err := p.renderer.HTML(tmpl, data)
	if err != nil {
		slog.Error("render page failed", "template", tmpl, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.pageCache.Set(r.Context(), key, html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Home renders the paginated post listing.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	owner := isOwner(sess, p.ownerEmail)
	page := parsePage(r)

	if sess == nil && p.serveCached(w, r, cache.HomeKey(page)) {
		return
	}

	posts, err := p.posts.List(ctx)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	visible := listing.All(posts, owner)

	data, err := sidebarData(ctx, p.categories, visible, owner)
	if err != nil {
		slog.Error("load sidebar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pg := listing.Paginate(visible, page, listing.PageSize)
	prev, next := pageLinks("/", nil, pg)
	data["Page"] = pg
	data["PrevURL"] = prev
	data["NextURL"] = next

	p.writeAndCache(w, r, cache.HomeKey(page), "home", &render.PageData{
		SiteName: p.siteName,
		Session:  sess,
		IsOwner:  owner,
		Data:     data,
	})
}

// Post renders a single post with its comments. Posts in the private
// category are only reachable by the owner.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	owner := isOwner(sess, p.ownerEmail)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := p.posts.FindByID(ctx, id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}
	if post.Category == taxonomy.PrivateCategory && !owner {
		// Hidden posts are indistinguishable from missing ones.
		http.NotFound(w, r)
		return
	}

	if sess == nil && p.serveCached(w, r, cache.PostKey(id)) {
		return
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render markdown failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	comments, err := p.comments.ListByPost(ctx, id)
	if err != nil {
		slog.Error("list comments failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.writeAndCache(w, r, cache.PostKey(id), "post", &render.PageData{
		Title:    post.Title,
		SiteName: p.siteName,
		Session:  sess,
		IsOwner:  owner,
		Data: map[string]any{
			"Post":     *post,
			"Body":     body,
			"Comments": comments,
		},
	})
}

// Category renders the paginated listing of one category. Anyone asking
// for the private category without being the owner goes back home.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	owner := isOwner(sess, p.ownerEmail)
	name := chi.URLParam(r, "name")
	page := parsePage(r)

	if name == taxonomy.PrivateCategory && !owner {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if sess == nil && p.serveCached(w, r, cache.CategoryKey(name, page)) {
		return
	}

	posts, err := p.posts.List(ctx)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	visible := listing.All(posts, owner)

	data, err := sidebarData(ctx, p.categories, visible, owner)
	if err != nil {
		slog.Error("load sidebar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pg := listing.Paginate(listing.ByCategory(visible, name), page, listing.PageSize)
	prev, next := pageLinks("/category/"+url.PathEscape(name), nil, pg)
	data["Category"] = name
	data["Page"] = pg
	data["PrevURL"] = prev
	data["NextURL"] = next

	p.writeAndCache(w, r, cache.CategoryKey(name, page), "category", &render.PageData{
		Title:    name,
		SiteName: p.siteName,
		Session:  sess,
		IsOwner:  owner,
		Data:     data,
	})
}

// Search renders case-insensitive substring search over titles and
// bodies. Results are never cached; the query space is unbounded.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	owner := isOwner(sess, p.ownerEmail)
	query := r.URL.Query().Get("q")
	page := parsePage(r)

	posts, err := p.posts.List(ctx)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	visible := listing.All(posts, owner)

	data, err := sidebarData(ctx, p.categories, visible, owner)
	if err != nil {
		slog.Error("load sidebar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pg := listing.Paginate(listing.Search(visible, query), page, listing.PageSize)
	prev, next := pageLinks("/search", url.Values{"q": {query}}, pg)
	data["Query"] = query
	data["Page"] = pg
	data["PrevURL"] = prev
	data["NextURL"] = next

	p.renderer.Page(w, r, "search", &render.PageData{
		Title:    "Search",
		SiteName: p.siteName,
		Session:  sess,
		IsOwner:  owner,
		Data:     data,
	})
}
