package main

import (
	"errors"
	"log"
	"net/http"
)

// --------- Handlers ---------

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.views.render(w, r, "index", http.StatusOK, pageData{Title: "Home"})
}

// GET/POST /register
func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Register", Action: "/register", IsRegister: true}
	if r.Method != http.MethodPost {
		s.views.render(w, r, "login", http.StatusOK, page)
		return
	}

	in := registerForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Name:     r.PostFormValue("name"),
	}
	in.normalize()
	page.Email, page.Name = in.Email, in.Name
	if err := in.validate(); err != nil {
		page.Errors = fieldErrors(err)
		s.views.render(w, r, "login", http.StatusOK, page)
		return
	}

	u, err := s.creds.Register(r.Context(), in.Email, in.Password, in.Name)
	if errors.Is(err, ErrAlreadyRegistered) {
		setFlash(w, "This email is already registered. Log in instead.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	} else if err != nil {
		s.internalError(w, "register", err)
		return
	}

	if err := s.sessions.Establish(w, u.ID); err != nil {
		s.internalError(w, "session", err)
		return
	}
	log.Printf("[auth] registered user %d", u.ID)
	http.Redirect(w, r, "/lists", http.StatusFound)
}

// GET/POST /login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Sign In", Action: "/login"}
	if r.Method != http.MethodPost {
		s.views.render(w, r, "login", http.StatusOK, page)
		return
	}

	in := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	in.normalize()
	page.Email = in.Email
	if err := in.validate(); err != nil {
		page.Errors = fieldErrors(err)
		s.views.render(w, r, "login", http.StatusOK, page)
		return
	}

	u, err := s.creds.Authenticate(r.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, ErrNotFound):
		setFlash(w, "The email doesn't exist. Please try again.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	case errors.Is(err, ErrInvalidCredentials):
		setFlash(w, "Incorrect password. Please try again.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	case err != nil:
		s.internalError(w, "login", err)
		return
	}

	if err := s.sessions.Establish(w, u.ID); err != nil {
		s.internalError(w, "session", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusFound)
}

// GET /logout
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.End(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
