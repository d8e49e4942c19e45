// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"weiblog/internal/cache"
	"weiblog/internal/database"
	"weiblog/internal/middleware"
	"weiblog/internal/models"
	"weiblog/internal/render"
	"weiblog/internal/session"
	"weiblog/internal/store"
	"weiblog/internal/taxonomy"
)

const ownerEmail = "owner@weiblog.local"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "weiblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "weiblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Renderer   *render.Renderer
	Sessions   *session.Store
	Posts      *store.PostStore
	Cats       *store.CategoryStore
	CommentsDB *store.CommentStore
	PageCache  *cache.PageCache
	Public     *Public
	Auth       *Auth
	PostsH     *Posts
	CatsH      *Categories
	CommentsH  *Comments
}

// newTestEnv creates a complete test environment with all handler
// dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	posts := store.NewPostStore(db)
	cats := store.NewCategoryStore(db)
	comments := store.NewCommentStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)
	service := taxonomy.NewService(cats)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Renderer:   renderer,
		Sessions:   sessions,
		Posts:      posts,
		Cats:       cats,
		CommentsDB: comments,
		PageCache:  pageCache,
		Public:     NewPublic(posts, cats, comments, renderer, pageCache, nil, "Test Blog", ownerEmail),
		Auth:       nil, // built per-test with fake OAuth endpoints
		PostsH:     NewPosts(posts, cats, renderer, pageCache, "Test Blog"),
		CatsH:      NewCategories(service, cats, renderer, pageCache, "Test Blog"),
		CommentsH:  NewComments(comments, posts, pageCache, nil, ownerEmail),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(email string) *session.Data {
	return &session.Data{
		Email:       email,
		DisplayName: "Test User",
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// mustCategory inserts a category directly through the store.
func mustCategory(t *testing.T, env *testEnv, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	cat, err := env.Cats.Create(context.Background(), &models.Category{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM categories WHERE id = $1", cat.ID)
	})
	return cat
}

// mustPost inserts a post directly through the store.
func mustPost(t *testing.T, env *testEnv, title, category string) *models.Post {
	t.Helper()
	post, err := env.Posts.Create(context.Background(), &models.Post{
		Title:    title,
		Content:  "Body of " + title,
		Category: category,
	})
	if err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM posts WHERE id = $1", post.ID)
	})
	return post
}
