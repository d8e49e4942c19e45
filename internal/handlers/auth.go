// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"weiblog/internal/auth"
	"weiblog/internal/middleware"
	"weiblog/internal/render"
	"weiblog/internal/session"
)

// stateCookieName holds the OAuth state between the redirect to Google
// and the callback.
const stateCookieName = "wb_oauth_state"

// Auth handles the Google sign-in flow and logout.
type Auth struct {
	google   *auth.Google
	sessions *session.Store
	renderer *render.Renderer
	siteName string
}

// NewAuth creates the auth handler group.
func NewAuth(google *auth.Google, sessions *session.Store, renderer *render.Renderer, siteName string) *Auth {
	return &Auth{
		google:   google,
		sessions: sessions,
		renderer: renderer,
		siteName: siteName,
	}
}

// LoginPage renders the sign-in page with a fresh Google consent URL.
// Already signed-in visitors are sent home.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state, err := auth.NewState()
	if err != nil {
		slog.Error("generate oauth state failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // ten minutes is plenty for a consent screen round trip
	})

	a.renderer.Page(w, r, "login", &render.PageData{
		Title:    "Sign in",
		SiteName: a.siteName,
		Data: map[string]any{
			"LoginURL": a.google.LoginURL(state),
		},
	})
}

// Callback completes the OAuth code flow: it verifies the state echo,
// exchanges the code for the visitor's Google identity, and opens a
// session.
func (a *Auth) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		slog.Warn("oauth state mismatch", "remote", r.RemoteAddr)
		http.Error(w, "invalid oauth state", http.StatusBadRequest)
		return
	}

	// The state is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	info, err := a.google.Exchange(ctx, code)
	if err != nil {
		slog.Error("oauth exchange failed", "error", err)
		http.Error(w, "sign-in failed", http.StatusBadGateway)
		return
	}

	if _, err := a.sessions.Create(ctx, w, &session.Data{
		Email:       info.Email,
		DisplayName: info.Name,
		PhotoURL:    info.PhotoURL,
	}); err != nil {
		slog.Error("create session failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("visitor signed in", "email", info.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns the visitor to the home page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("destroy session failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
