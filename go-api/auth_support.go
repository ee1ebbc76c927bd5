package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// SessionAuthority binds requests to a user through a signed session cookie.
type SessionAuthority struct {
	creds    *CredentialStore
	secret   []byte
	name     string
	secure   bool
	sameSite http.SameSite
	ttl      time.Duration
}

func NewSessionAuthority(creds *CredentialStore, cfg Config) *SessionAuthority {
	return &SessionAuthority{
		creds:    creds,
		secret:   []byte(cfg.SecretKey),
		name:     cfg.CookieName,
		secure:   cfg.CookieSecure,
		sameSite: cfg.CookieSameSite,
		ttl:      cfg.SessionTTL,
	}
}

// Establish issues a session for userID on the response.
func (s *SessionAuthority) Establish(w http.ResponseWriter, userID uint) error {
	tok, err := signToken(s.secret, userID, s.ttl)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: s.sameSite,
		Secure:   s.secure,
		Expires:  time.Now().Add(s.ttl),
	})
	return nil
}

// End clears the session cookie.
func (s *SessionAuthority) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: s.sameSite,
		Secure:   s.secure,
		MaxAge:   -1,
	})
}

// CurrentUser returns the session's user id, or false when there is no valid session
// or the user no longer exists.
func (s *SessionAuthority) CurrentUser(r *http.Request) (uint, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return 0, false
	}
	id, err := parseToken(s.secret, c.Value)
	if err != nil {
		return 0, false
	}
	if _, err := s.creds.FindUser(r.Context(), id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[auth] load user %d: %v", id, err)
		}
		return 0, false
	}
	return id, true
}

// RequireUser gates a route group: requests without a session go to /login.
func (s *SessionAuthority) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.CurrentUser(r)
		if !ok {
			setFlash(w, "Please log in to access this page.")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), id)))
	})
}

// OptionalUser attaches the session's user when there is one, for public pages.
func (s *SessionAuthority) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := s.CurrentUser(r); ok {
			r = r.WithContext(withUser(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	csrfTokenKey ctxKey = "csrfToken"
)

func withUser(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// currentUser reads the id RequireUser stored on the request context.
func currentUser(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok && id != 0
}
