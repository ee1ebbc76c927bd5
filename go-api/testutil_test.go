package main

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() Config {
	return Config{
		DatabaseURL:    ":memory:",
		SecretKey:      "test-secret",
		CookieName:     "todo_session",
		CookieSameSite: http.SameSiteLaxMode,
		SessionTTL:     time.Hour,
		Port:           "0",
		Ownership:      OwnershipStrict,
		CascadeDelete:  true,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := openDatabase(":memory:", logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("openDatabase: %v", err)
	}
	if err := autoMigrate(db); err != nil {
		t.Fatalf("autoMigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustRegister(t *testing.T, creds *CredentialStore, email string) User {
	t.Helper()
	u, err := creds.Register(context.Background(), email, "password123", "Tester")
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return u
}

// testClient drives the full router through a real HTTP server with a cookie jar.
type testClient struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	app    *server
}

func newTestClient(t *testing.T, cfg Config) *testClient {
	t.Helper()
	s, err := newServer(cfg, newTestDB(t), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	return &testClient{t: t, srv: ts, client: &http.Client{Jar: jar}, app: s}
}

// withClient returns a second browser against the same server, with its own cookies.
func (c *testClient) withClient() *testClient {
	jar, _ := cookiejar.New(nil)
	return &testClient{t: c.t, srv: c.srv, client: &http.Client{Jar: jar}, app: c.app}
}

func (c *testClient) csrf() string {
	u, _ := url.Parse(c.srv.URL)
	for _, ck := range c.client.Jar.Cookies(u) {
		if ck.Name == csrfCookie {
			return ck.Value
		}
	}
	return ""
}

func (c *testClient) hasCookie(name string) bool {
	u, _ := url.Parse(c.srv.URL)
	for _, ck := range c.client.Jar.Cookies(u) {
		if ck.Name == name && ck.Value != "" {
			return true
		}
	}
	return false
}

// get follows redirects and returns the final status, path and body.
func (c *testClient) get(path string) (int, string, string) {
	c.t.Helper()
	resp, err := c.client.Get(c.srv.URL + path)
	if err != nil {
		c.t.Fatalf("GET %s: %v", path, err)
	}
	return finish(c.t, resp)
}

// post submits a form with the current CSRF token, fetching one first if needed.
func (c *testClient) post(path string, vals url.Values) (int, string, string) {
	c.t.Helper()
	if c.csrf() == "" {
		c.get("/")
	}
	if vals == nil {
		vals = url.Values{}
	}
	vals.Set(csrfField, c.csrf())
	resp, err := c.client.PostForm(c.srv.URL+path, vals)
	if err != nil {
		c.t.Fatalf("POST %s: %v", path, err)
	}
	return finish(c.t, resp)
}

func (c *testClient) register(email string) {
	c.t.Helper()
	status, path, _ := c.post("/register", url.Values{
		"email": {email}, "password": {"password123"}, "name": {"Tester"},
	})
	if status != http.StatusOK || path != "/lists" {
		c.t.Fatalf("register %s: status=%d path=%s", email, status, path)
	}
}

func finish(t *testing.T, resp *http.Response) (int, string, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, resp.Request.URL.Path, string(b)
}
