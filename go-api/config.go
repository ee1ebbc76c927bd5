package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type OwnershipMode string

const (
	OwnershipStrict OwnershipMode = "strict"
	OwnershipLegacy OwnershipMode = "legacy"
)

type Config struct {
	DatabaseURL    string
	SecretKey      string
	CookieName     string
	CookieSecure   bool
	CookieSameSite http.SameSite
	SessionTTL     time.Duration
	CORSOrigin     string
	Port           string
	Ownership      OwnershipMode
	CascadeDelete  bool
}

func loadConfig() (Config, error) {
	cfg := Config{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SecretKey:      os.Getenv("SECRET_KEY"),
		CookieName:     getenv("COOKIE_NAME", "todo_session"),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
		CookieSameSite: parseSameSite(os.Getenv("COOKIE_SAMESITE")),
		SessionTTL:     30 * 24 * time.Hour,
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
		Port:           getenv("PORT", "8080"),
		Ownership:      OwnershipStrict,
		CascadeDelete:  true,
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.SecretKey == "" {
		return cfg, fmt.Errorf("SECRET_KEY is not set")
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer, got %q", v)
		}
		cfg.SessionTTL = time.Duration(n) * time.Hour
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("OWNERSHIP_MODE"))) {
	case "", "strict":
	case "legacy":
		cfg.Ownership = OwnershipLegacy
	default:
		return cfg, fmt.Errorf("OWNERSHIP_MODE must be strict or legacy")
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LIST_DELETE"))) {
	case "", "cascade":
	case "orphan":
		cfg.CascadeDelete = false
	default:
		return cfg, fmt.Errorf("LIST_DELETE must be cascade or orphan")
	}
	return cfg, nil
}

// let env control SameSite: "none" | "lax" | "strict"  (default: lax)
func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
