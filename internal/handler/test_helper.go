// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/osite-go/internal/auth"
	"github.com/olegiv/osite-go/internal/middleware"
	"github.com/olegiv/osite-go/internal/store"
)

// testDB creates an in-memory SQLite database with the full schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login_at DATETIME
		);

		CREATE TABLE content_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			homepage TEXT NOT NULL DEFAULT '{}',
			about TEXT NOT NULL DEFAULT '{}',
			contact TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE portfolio_projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE project_images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			url TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES portfolio_projects(id) ON DELETE CASCADE
		);

		CREATE TABLE contact_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			service TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL,
			message TEXT NOT NULL,
			user_id INTEGER,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testSessionManager returns a session manager backed by the default
// in-memory store.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = time.Hour
	return sm
}

// createTestUser inserts an admin user with the given credentials.
func createTestUser(t *testing.T, db *sql.DB, username, password string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now()
	result, err := db.Exec(
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, hash, now,
	)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	id, _ := result.LastInsertId()
	return store.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
	}
}

// newJSONRequest creates an HTTP request with a JSON body.
func newJSONRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// doSession executes a handler wrapped in the session middleware, carrying
// over cookies from a previous response when given.
func doSession(t *testing.T, sm *scs.SessionManager, h http.HandlerFunc, req *http.Request, prev *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	if prev != nil {
		for _, cookie := range prev.Result().Cookies() {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	sm.LoadAndSave(h).ServeHTTP(w, req)
	return w
}

// unmarshalBody unmarshals a JSON response body into the specified type.
func unmarshalBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return out
}

// loginRecorder performs a login through the session middleware and returns
// the recorder so its cookie can be replayed on subsequent requests.
func loginRecorder(t *testing.T, sm *scs.SessionManager, db *sql.DB, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	authHandler := NewAuthHandler(db, sm, middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()))
	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"`+username+`","password":"`+password+`"}`)
	w := doSession(t, sm, authHandler.Login, req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("test login failed: status %d, body %s", w.Code, w.Body.String())
	}
	return w
}
