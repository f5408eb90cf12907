// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/osite-go/internal/model"
)

func TestContactCreate(t *testing.T) {
	db := testDB(t)
	h := NewContactHandler(db)

	req := newJSONRequest(t, http.MethodPost, "/api/contact",
		`{"name":"  Jane Doe  ","email":"jane@example.com","phone":"555-0100","service":"Web design","message":"Please call me back."}`)
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var name string
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM contact_requests`).Scan(&count); err != nil {
		t.Fatalf("counting contact requests: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored request, got %d", count)
	}
	if err := db.QueryRow(`SELECT name FROM contact_requests`).Scan(&name); err != nil {
		t.Fatalf("reading stored request: %v", err)
	}
	if name != "Jane Doe" {
		t.Errorf("expected trimmed name %q, got %q", "Jane Doe", name)
	}
}

func TestContactCreateValidation(t *testing.T) {
	db := testDB(t)
	h := NewContactHandler(db)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"email":"a@b.com","message":"hi"}`, "name"},
		{"missing message", `{"name":"Jane","email":"a@b.com"}`, "message"},
		{"missing email", `{"name":"Jane","message":"hi"}`, "email"},
		{"invalid email", `{"name":"Jane","email":"not-an-email","message":"hi"}`, "email"},
		{"whitespace only name", `{"name":"   ","email":"a@b.com","message":"hi"}`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/contact", tt.body)
			w := httptest.NewRecorder()
			h.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			body := unmarshalBody[struct {
				Success bool              `json:"success"`
				Error   string            `json:"error"`
				Details map[string]string `json:"details"`
			}](t, w)
			if body.Success {
				t.Error("expected success false")
			}
			if _, ok := body.Details[tt.field]; !ok {
				t.Errorf("expected a detail for field %q, got %v", tt.field, body.Details)
			}
		})
	}

	// Nothing should have been stored.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM contact_requests`).Scan(&count); err != nil {
		t.Fatalf("counting contact requests: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 stored requests, got %d", count)
	}
}

func TestContactListNewestFirst(t *testing.T) {
	db := testDB(t)
	h := NewContactHandler(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		_, err := db.Exec(
			`INSERT INTO contact_requests (name, email, phone, service, message, created_at) VALUES (?, ?, '', '', 'hi', ?)`,
			name, name+"@example.com", base.Add(time.Duration(i)*time.Hour),
		)
		if err != nil {
			t.Fatalf("inserting contact request: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	requests := unmarshalBody[[]model.ContactRequest](t, w)
	if len(requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(requests))
	}
	if requests[0].Name != "third" || requests[2].Name != "first" {
		t.Errorf("expected newest first ordering, got %s, %s, %s",
			requests[0].Name, requests[1].Name, requests[2].Name)
	}
}

func TestContactListEmpty(t *testing.T) {
	db := testDB(t)
	h := NewContactHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	// An empty inbox serializes as [], not null.
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}
