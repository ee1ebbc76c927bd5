package main

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type views map[string]*template.Template

func loadViews() (views, error) {
	out := views{}
	for _, page := range []string{"index", "login", "lists", "list"} {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, err
		}
		out[page] = t
	}
	return out, nil
}

// pageData is the single view model all templates share.
type pageData struct {
	Title      string
	SignedIn   bool
	Flashes    []string
	CSRF       string
	Action     string
	Errors     map[string]string
	IsRegister bool
	Email      string
	Name       string
	Value      string
	Editing    bool
	Lists      []ListSummary
	Tasks      []Task
}

func fieldErrors(err error) map[string]string {
	if v, ok := err.(*ValidationError); ok {
		return v.Fields
	}
	return nil
}

// render fills the request-scoped fields and writes the page. Rendering goes to a
// buffer first so a template error never produces half a page.
func (v views) render(w http.ResponseWriter, r *http.Request, page string, status int, d pageData) {
	t, ok := v[page]
	if !ok {
		http.Error(w, "unknown view", http.StatusInternalServerError)
		return
	}
	d.Flashes = append(popFlashes(w, r), d.Flashes...)
	d.CSRF = csrfToken(r.Context())
	if _, ok := currentUser(r.Context()); ok {
		d.SignedIn = true
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", d); err != nil {
		log.Printf("[http] render %s: %v", page, err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
