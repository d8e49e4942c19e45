// Package router sets up all HTTP routes and middleware chains for the
// blog. Reading pages are public; management routes are fenced off for
// the site owner.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"weiblog/internal/handlers"
	"weiblog/internal/metrics"
	"weiblog/internal/middleware"
	"weiblog/internal/session"
	"weiblog/web"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions   *session.Store
	Public     *handlers.Public
	Auth       *handlers.Auth
	Posts      *handlers.Posts
	Categories *handlers.Categories
	Comments   *handlers.Comments
	Collector  *metrics.Collector
	Gatherer   prometheus.Gatherer
	OwnerEmail string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(d.Collector))
	r.Use(middleware.SecureHeaders)

	limiter := middleware.NewRateLimiter(rate.Limit(10), 30)
	r.Use(limiter.Middleware)

	r.Use(middleware.LoadSession(d.Sessions))

	// Health and metrics — no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))

	// Embedded static assets.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Reading pages.
		r.Get("/", d.Public.Home)
		r.Get("/post/{id}", d.Public.Post)
		r.Get("/category/{name}", d.Public.Category)
		r.Get("/search", d.Public.Search)

		// Sign-in flow.
		r.Get("/login", d.Auth.LoginPage)
		r.Get("/auth/callback", d.Auth.Callback)
		r.Post("/logout", d.Auth.Logout)

		// Comments — any signed-in visitor.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/post/{id}/comments", d.Comments.Create)
		})

		// Management — owner only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOwner(d.OwnerEmail))

			r.Get("/create", d.Posts.CreateForm)
			r.Post("/posts", d.Posts.Create)
			r.Get("/edit/{id}", d.Posts.EditForm)
			r.Post("/posts/{id}", d.Posts.Update)
			r.Post("/posts/{id}/delete", d.Posts.Delete)
			r.Post("/posts/{id}/recommend", d.Posts.Recommend)

			r.Get("/categories", d.Categories.Manage)
			r.Post("/categories", d.Categories.Create)
			r.Post("/categories/{id}/delete", d.Categories.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
