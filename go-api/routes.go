package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

type server struct {
	cfg      Config
	creds    *CredentialStore
	sessions *SessionAuthority
	catalog  *Catalog
	views    views
}

// newServer wires the stores and authorities over an opened database.
func newServer(cfg Config, db *gorm.DB, bcryptCost int) (*server, error) {
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	creds := NewCredentialStore(db, bcryptCost)
	return &server{
		cfg:      cfg,
		creds:    creds,
		sessions: NewSessionAuthority(creds, cfg),
		catalog:  NewCatalog(db, NewOwnershipRegistry(cfg.Ownership), cfg.CascadeDelete),
		views:    v,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if s.cfg.CORSOrigin != "" {
		// allow comma-separated list of origins
		var origins []string
		for _, p := range strings.Split(s.cfg.CORSOrigin, ",") {
			if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
				origins = append(origins, o)
			}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Group(func(r chi.Router) {
		r.Use(csrfProtect(s.cfg.CookieSecure))

		// Public
		r.Group(func(r chi.Router) {
			r.Use(s.sessions.OptionalUser)
			r.Get("/", s.handleHome)
			r.Get("/register", s.handleRegister)
			r.Post("/register", s.handleRegister)
			r.Get("/login", s.handleLogin)
			r.Post("/login", s.handleLogin)
		})

		// Session required
		r.Group(func(r chi.Router) {
			r.Use(s.sessions.RequireUser)
			r.Get("/logout", s.handleLogout)
			r.Get("/lists", s.handleLists)
			r.Post("/lists", s.handleLists)
			r.Get("/delete/list/{id}", s.handleDeleteList)
			r.Post("/delete/list/{id}", s.handleDeleteList)
			r.Get("/list/{id}", s.handleListTasks)
			r.Post("/list/{id}", s.handleListTasks)
			r.Get("/delete_task/{id}", s.handleDeleteTask)
			r.Post("/delete_task/{id}", s.handleDeleteTask)
			r.Get("/edit_task/{id}", s.handleEditTask)
			r.Post("/edit_task/{id}", s.handleEditTask)
		})
	})

	return r
}
