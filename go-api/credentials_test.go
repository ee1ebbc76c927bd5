package main

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCredentialStore_RegisterTwiceKeepsOneUser(t *testing.T) {
	db := newTestDB(t)
	creds := NewCredentialStore(db, bcrypt.MinCost)
	ctx := context.Background()

	first := mustRegister(t, creds, "a@x.com")
	if _, err := creds.Register(ctx, "  A@X.com ", "otherpassword", "Someone"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second Register: expected ErrAlreadyRegistered, got %v", err)
	}

	var count int64
	if err := db.Model(&User{}).Where("email = ?", "a@x.com").Count(&count).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user row, got %d", count)
	}

	// the first password still works
	u, err := creds.Authenticate(ctx, "a@x.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != first.ID {
		t.Fatalf("expected user %d, got %d", first.ID, u.ID)
	}
}

func TestCredentialStore_StoresDigestNotPassword(t *testing.T) {
	creds := NewCredentialStore(newTestDB(t), bcrypt.MinCost)
	u := mustRegister(t, creds, "b@x.com")
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Fatalf("expected a bcrypt digest, got %q", u.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) != nil {
		t.Fatalf("stored digest does not verify")
	}
}

func TestCredentialStore_AuthenticateErrors(t *testing.T) {
	creds := NewCredentialStore(newTestDB(t), bcrypt.MinCost)
	ctx := context.Background()
	mustRegister(t, creds, "a@x.com")

	if _, err := creds.Authenticate(ctx, "nobody@x.com", "password123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email: expected ErrNotFound, got %v", err)
	}
	if _, err := creds.Authenticate(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := creds.Authenticate(ctx, "A@X.COM", "password123"); err != nil {
		t.Fatalf("email should match case-insensitively: %v", err)
	}
}

func TestCredentialStore_FindUser(t *testing.T) {
	creds := NewCredentialStore(newTestDB(t), bcrypt.MinCost)
	u := mustRegister(t, creds, "a@x.com")

	got, err := creds.FindUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindUser: %v", err)
	}
	if got.Email != "a@x.com" || got.Name != "Tester" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if _, err := creds.FindUser(context.Background(), u.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
