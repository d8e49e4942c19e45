// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"weiblog/internal/cache"
	"weiblog/internal/models"
	"weiblog/internal/taxonomy"
)

func TestHomeListsPosts(t *testing.T) {
	env := newTestEnv(t)
	dev := mustCategory(t, env, "Dev Home Test", nil)
	post := mustPost(t, env, "First Post About Testing", dev.Name)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	env.Public.Home(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, post.Title) {
		t.Error("home page does not list the post")
	}
	if !strings.Contains(body, dev.Name) {
		t.Error("home page sidebar does not list the category")
	}
}

func TestHomeServesAnonymousFromCache(t *testing.T) {
	env := newTestEnv(t)
	dev := mustCategory(t, env, "Dev Cache Test", nil)
	post := mustPost(t, env, "Cached Listing Post", dev.Name)

	w := httptest.NewRecorder()
	env.Public.Home(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	// Remove the post behind the cache's back; the anonymous rendering
	// must still come out of Valkey unchanged.
	if _, err := env.DB.Exec("DELETE FROM posts WHERE id = $1", post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	w = httptest.NewRecorder()
	env.Public.Home(w, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(w.Body.String(), post.Title) {
		t.Error("second anonymous request was not served from the page cache")
	}
}

func TestHomeSignedInNeverCached(t *testing.T) {
	env := newTestEnv(t)
	mustCategory(t, env, "Dev Fresh Test", nil)

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(ctxWithSession(r.Context(), testSession("reader@example.com")))
	w := httptest.NewRecorder()
	env.Public.Home(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if _, ok := env.PageCache.Get(context.Background(), cache.HomeKey(1)); ok {
		t.Error("a signed-in rendering landed in the shared page cache")
	}
}

func TestHomeHidesPrivatePosts(t *testing.T) {
	env := newTestEnv(t)
	post := mustPost(t, env, "Tell Me About A Conflict", taxonomy.PrivateCategory)

	w := httptest.NewRecorder()
	env.Public.Home(w, httptest.NewRequest("GET", "/", nil))
	if strings.Contains(w.Body.String(), post.Title) {
		t.Error("anonymous home page lists a private post")
	}

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(ctxWithSession(r.Context(), testSession(ownerEmail)))
	w = httptest.NewRecorder()
	env.Public.Home(w, r)
	if !strings.Contains(w.Body.String(), post.Title) {
		t.Error("owner home page does not list the private post")
	}
}

func TestPostRendersBodyAndComments(t *testing.T) {
	env := newTestEnv(t)
	dev := mustCategory(t, env, "Dev Post Page Test", nil)
	post := mustPost(t, env, "Markdown Rendering Post", dev.Name)

	comment, err := env.CommentsDB.Create(context.Background(), &models.Comment{
		PostID:    post.ID,
		Text:      "Great write-up, thanks!",
		UserEmail: "reader@example.com",
		UserName:  "A Reader",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM comments WHERE id = $1", comment.ID) })

	r := withChiURLParam(httptest.NewRequest("GET", "/post/"+post.ID.String(), nil), "id", post.ID.String())
	w := httptest.NewRecorder()
	env.Public.Post(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<p>Body of "+post.Title+"</p>") {
		t.Error("markdown body was not rendered to HTML")
	}
	if !strings.Contains(body, comment.Text) || !strings.Contains(body, comment.UserName) {
		t.Error("comment with its author name is missing from the page")
	}
}

func TestPostNotFound(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		id   string
	}{
		{"malformed id", "not-a-uuid"},
		{"unknown id", uuid.New().String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withChiURLParam(httptest.NewRequest("GET", "/post/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()
			env.Public.Post(w, r)
			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", w.Code)
			}
		})
	}
}

func TestPostPrivateCategory(t *testing.T) {
	env := newTestEnv(t)
	post := mustPost(t, env, "Describe A Failure", taxonomy.PrivateCategory)

	t.Run("non-owner gets 404", func(t *testing.T) {
		r := withChiURLParam(httptest.NewRequest("GET", "/post/"+post.ID.String(), nil), "id", post.ID.String())
		r = r.WithContext(ctxWithSession(r.Context(), testSession("reader@example.com")))
		w := httptest.NewRecorder()
		env.Public.Post(w, r)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("owner reads it", func(t *testing.T) {
		r := withChiURLParam(httptest.NewRequest("GET", "/post/"+post.ID.String(), nil), "id", post.ID.String())
		r = r.WithContext(ctxWithSession(r.Context(), testSession(ownerEmail)))
		w := httptest.NewRecorder()
		env.Public.Post(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), post.Title) {
			t.Error("post title missing from owner view")
		}
	})
}

func TestCategoryFiltersPosts(t *testing.T) {
	env := newTestEnv(t)
	dev := mustCategory(t, env, "Dev Filter Test", nil)
	life := mustCategory(t, env, "Life Filter Test", nil)
	inDev := mustPost(t, env, "Post Filed Under Dev", dev.Name)
	inLife := mustPost(t, env, "Post Filed Under Life", life.Name)

	r := withChiURLParam(httptest.NewRequest("GET", "/category/"+dev.Name, nil), "name", dev.Name)
	w := httptest.NewRecorder()
	env.Public.Category(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, inDev.Title) {
		t.Error("category page misses its own post")
	}
	if strings.Contains(body, inLife.Title) {
		t.Error("category page lists a post from another category")
	}
}

func TestCategoryPrivateRedirects(t *testing.T) {
	env := newTestEnv(t)

	r := withChiURLParam(httptest.NewRequest("GET", "/category/"+taxonomy.PrivateCategory, nil), "name", taxonomy.PrivateCategory)
	w := httptest.NewRecorder()
	env.Public.Category(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestCategoryPrivateOwnerAllowed(t *testing.T) {
	env := newTestEnv(t)
	post := mustPost(t, env, "Walk Me Through A Decision", taxonomy.PrivateCategory)

	r := withChiURLParam(httptest.NewRequest("GET", "/category/"+taxonomy.PrivateCategory, nil), "name", taxonomy.PrivateCategory)
	r = r.WithContext(ctxWithSession(r.Context(), testSession(ownerEmail)))
	w := httptest.NewRecorder()
	env.Public.Category(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), post.Title) {
		t.Error("owner does not see the private post in its category")
	}
}

func TestSearchMatchesTitleAndBody(t *testing.T) {
	env := newTestEnv(t)
	dev := mustCategory(t, env, "Dev Search Test", nil)
	byTitle := mustPost(t, env, "Profiling Goroutines", dev.Name)
	byBody := mustPost(t, env, "An Unrelated Heading", dev.Name)
	miss := mustPost(t, env, "Gardening Notes", dev.Name)

	// Search is case-insensitive over both fields; "Body of An Unrelated
	// Heading" matches "unrelated" through the content.
	r := httptest.NewRequest("GET", "/search?q=UNRELATED", nil)
	w := httptest.NewRecorder()
	env.Public.Search(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, byBody.Title) {
		t.Error("content match missing from results")
	}
	if strings.Contains(body, miss.Title) {
		t.Error("non-matching post appears in results")
	}

	r = httptest.NewRequest("GET", "/search?q=goroutines", nil)
	w = httptest.NewRecorder()
	env.Public.Search(w, r)
	if !strings.Contains(w.Body.String(), byTitle.Title) {
		t.Error("title match missing from results")
	}
}
