package main

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores anything past 72 bytes
	minNameLen     = 3
	maxNameLen     = 100
	maxListNameLen = 100
	maxTaskLen     = 200
)

type registerForm struct {
	Email    string
	Password string
	Name     string
}

type loginForm struct {
	Email    string
	Password string
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func checkEmail(v *ValidationError, email string) {
	switch {
	case email == "":
		v.add("email", "This field is required.")
	case len(email) > 100 || !validEmail(email):
		v.add("email", "Invalid email address.")
	}
}

func checkPassword(v *ValidationError, pw string) {
	switch {
	case pw == "":
		v.add("password", "This field is required.")
	case utf8.RuneCountInString(pw) < minPasswordLen:
		v.add("password", "Field must be at least 8 characters long.")
	case len(pw) > maxPasswordLen:
		v.add("password", "Field must be at most 72 bytes long.")
	}
}

func (f *registerForm) normalize() {
	f.Email = normalizeEmail(f.Email)
	f.Name = strings.TrimSpace(f.Name)
}

func (f registerForm) validate() error {
	var v ValidationError
	checkEmail(&v, f.Email)
	checkPassword(&v, f.Password)
	switch n := utf8.RuneCountInString(f.Name); {
	case n == 0:
		v.add("name", "This field is required.")
	case n < minNameLen:
		v.add("name", "Field must be at least 3 characters long.")
	case n > maxNameLen:
		v.add("name", "Field must be at most 100 characters long.")
	}
	return v.errOrNil()
}

func (f *loginForm) normalize() {
	f.Email = normalizeEmail(f.Email)
}

func (f loginForm) validate() error {
	var v ValidationError
	checkEmail(&v, f.Email)
	checkPassword(&v, f.Password)
	return v.errOrNil()
}

func validateListName(name string) error {
	var v ValidationError
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		v.add("list_name", "This field is required.")
	case n > maxListNameLen:
		v.add("list_name", "Field must be at most 100 characters long.")
	}
	return v.errOrNil()
}

func validateTaskText(text string) error {
	var v ValidationError
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		v.add("task", "This field is required.")
	case n > maxTaskLen:
		v.add("task", "Field must be at most 200 characters long.")
	}
	return v.errOrNil()
}
