package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRegisterForm_Validate(t *testing.T) {
	cases := []struct {
		name   string
		form   registerForm
		fields []string
	}{
		{"ok", registerForm{Email: "a@x.com", Password: "password123", Name: "Ann"}, nil},
		{"empty", registerForm{}, []string{"email", "password", "name"}},
		{"bad email", registerForm{Email: "not-an-email", Password: "password123", Name: "Ann"}, []string{"email"}},
		{"no tld", registerForm{Email: "a@localhost", Password: "password123", Name: "Ann"}, []string{"email"}},
		{"short password", registerForm{Email: "a@x.com", Password: "short", Name: "Ann"}, []string{"password"}},
		{"long password", registerForm{Email: "a@x.com", Password: strings.Repeat("p", 73), Name: "Ann"}, []string{"password"}},
		{"short name", registerForm{Email: "a@x.com", Password: "password123", Name: "Al"}, []string{"name"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.validate()
			if tc.fields == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tc.fields) {
				t.Fatalf("expected fields %v, got %v", tc.fields, verr.Fields)
			}
			for _, f := range tc.fields {
				if _, ok := verr.Fields[f]; !ok {
					t.Fatalf("missing error for %s: %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestRegisterForm_Normalize(t *testing.T) {
	f := registerForm{Email: "  Ann@X.COM ", Name: "  Ann  "}
	f.normalize()
	if f.Email != "ann@x.com" || f.Name != "Ann" {
		t.Fatalf("unexpected normalized form: %+v", f)
	}
}

func TestTaskAndListValidation(t *testing.T) {
	if validateTaskText("Ship") != nil || validateListName("Work") != nil {
		t.Fatalf("expected valid inputs")
	}
	if validateTaskText("") == nil || validateListName("") == nil {
		t.Fatalf("expected empty inputs to fail")
	}
	if validateTaskText(strings.Repeat("x", 201)) == nil {
		t.Fatalf("expected long task text to fail")
	}
	if validateListName(strings.Repeat("x", 101)) == nil {
		t.Fatalf("expected long list name to fail")
	}
}
