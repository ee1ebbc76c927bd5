package main

import (
	"errors"
	"fmt"
	"net/http"
)

// GET/POST /lists
func (s *server) handleLists(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	page := pageData{Title: "Your Lists"}

	if r.Method == http.MethodPost {
		name := r.PostFormValue("list_name")
		_, err := s.catalog.CreateList(r.Context(), user, name)
		var verr *ValidationError
		switch {
		case err == nil:
			http.Redirect(w, r, "/lists", http.StatusFound)
			return
		case errors.Is(err, ErrListExists):
			setFlash(w, "You already have a list with this name. Go to the list instead.")
			http.Redirect(w, r, "/lists", http.StatusFound)
			return
		case errors.As(err, &verr):
			page.Errors = verr.Fields
			page.Value = name
		default:
			s.internalError(w, "create list", err)
			return
		}
	}

	lists, err := s.catalog.ListSummaries(r.Context(), user)
	if err != nil {
		s.internalError(w, "lists", err)
		return
	}
	page.Lists = lists
	s.views.render(w, r, "lists", http.StatusOK, page)
}

// GET|POST /delete/list/{id}
func (s *server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	user, _ := currentUser(r.Context())
	if err := s.catalog.DeleteList(r.Context(), user, id); err != nil {
		s.catalogError(w, r, "delete list", err)
		return
	}
	http.Redirect(w, r, "/lists", http.StatusFound)
}

// GET/POST /list/{id}
func (s *server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	user, _ := currentUser(r.Context())
	page := pageData{Action: fmt.Sprintf("/list/%d", id)}

	if r.Method == http.MethodPost {
		text := r.PostFormValue("task")
		_, err := s.catalog.CreateTask(r.Context(), user, id, text)
		var verr *ValidationError
		switch {
		case err == nil:
			http.Redirect(w, r, page.Action, http.StatusFound)
			return
		case errors.As(err, &verr):
			page.Errors = verr.Fields
			page.Value = text
		default:
			s.catalogError(w, r, "create task", err)
			return
		}
	}

	l, tasks, err := s.catalog.ListTasks(r.Context(), user, id)
	if err != nil {
		s.catalogError(w, r, "list tasks", err)
		return
	}
	page.Title = l.Name
	page.Tasks = tasks
	s.views.render(w, r, "list", http.StatusOK, page)
}

// GET|POST /delete_task/{id}
func (s *server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	user, _ := currentUser(r.Context())
	t, err := s.catalog.DeleteTask(r.Context(), user, id)
	if err != nil {
		s.catalogError(w, r, "delete task", err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/list/%d", t.ListID), http.StatusFound)
}

// GET/POST /edit_task/{id}
func (s *server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	user, _ := currentUser(r.Context())
	ctx := r.Context()

	t, err := s.catalog.GetTask(ctx, user, id)
	if err != nil {
		s.catalogError(w, r, "edit task", err)
		return
	}
	page := pageData{Action: fmt.Sprintf("/edit_task/%d", id), Editing: true, Value: t.Text}

	if r.Method == http.MethodPost {
		text := r.PostFormValue("task")
		_, err := s.catalog.EditTask(ctx, user, id, text)
		var verr *ValidationError
		switch {
		case err == nil:
			http.Redirect(w, r, fmt.Sprintf("/list/%d", t.ListID), http.StatusFound)
			return
		case errors.As(err, &verr):
			page.Errors = verr.Fields
			page.Value = text
		default:
			s.catalogError(w, r, "edit task", err)
			return
		}
	}

	l, tasks, err := s.catalog.ListTasks(ctx, user, t.ListID)
	if err != nil {
		s.catalogError(w, r, "edit task", err)
		return
	}
	page.Title = l.Name
	page.Tasks = tasks
	s.views.render(w, r, "list", http.StatusOK, page)
}

// catalogError converts catalog failures into a flash and a redirect.
func (s *server) catalogError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		setFlash(w, "That list or task doesn't exist.")
		http.Redirect(w, r, "/lists", http.StatusFound)
	case errors.Is(err, ErrForbidden):
		if !s.catalog.owners.Strict() {
			// legacy: bounce home without saying why
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		setFlash(w, "You don't have access to that list.")
		http.Redirect(w, r, "/lists", http.StatusFound)
	default:
		s.internalError(w, op, err)
	}
}
