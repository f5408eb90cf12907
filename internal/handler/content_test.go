// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/osite-go/internal/content"
	"github.com/olegiv/osite-go/internal/model"
)

func TestContentGetEmptyDatabase(t *testing.T) {
	db := testDB(t)
	h := NewContentHandler(content.NewService(db, 50))

	req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	got := unmarshalBody[model.Content](t, w)
	if string(got.Homepage) != "{}" {
		t.Errorf("expected empty homepage document, got %s", got.Homepage)
	}
	if got.Services == nil || len(got.Services) != 0 {
		t.Errorf("expected empty services slice, got %v", got.Services)
	}
	if got.Portfolio == nil || len(got.Portfolio) != 0 {
		t.Errorf("expected empty portfolio slice, got %v", got.Portfolio)
	}
}

func TestContentUpdateRoundTrip(t *testing.T) {
	db := testDB(t)
	h := NewContentHandler(content.NewService(db, 50))

	payload := `{
		"homepage": {"headline": "Welcome", "heroImage": "/uploads/hero.jpg"},
		"about": {"founder": "Jane"},
		"contact": {"email": "hello@example.com"},
		"services": [
			{"title": "Design", "description": "We design things."},
			{"title": "Build", "description": "We build things."}
		],
		"portfolio": [
			{"title": "Project A", "description": "First.", "images": ["/uploads/a1.jpg", {"url": "/uploads/a2.jpg"}]}
		]
	}`

	req := newJSONRequest(t, http.MethodPost, "/api/admin/content", payload)
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	gw := httptest.NewRecorder()
	h.Get(gw, getReq)

	got := unmarshalBody[model.Content](t, gw)
	if !strings.Contains(string(got.Homepage), "Welcome") {
		t.Errorf("homepage document missing headline: %s", got.Homepage)
	}
	if len(got.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(got.Services))
	}
	if got.Services[0].Title != "Design" || got.Services[0].Position != 0 {
		t.Errorf("expected first service Design at position 0, got %+v", got.Services[0])
	}
	if got.Services[1].Position != 1 {
		t.Errorf("expected second service at position 1, got %d", got.Services[1].Position)
	}
	if len(got.Portfolio) != 1 {
		t.Fatalf("expected 1 portfolio project, got %d", len(got.Portfolio))
	}
	if len(got.Portfolio[0].Images) != 2 {
		t.Errorf("expected 2 project images, got %d", len(got.Portfolio[0].Images))
	}
}

// A second save fully replaces the previous services and portfolio.
func TestContentUpdateReplacesPreviousSets(t *testing.T) {
	db := testDB(t)
	h := NewContentHandler(content.NewService(db, 50))

	first := `{"services":[{"title":"Old A"},{"title":"Old B"}],"portfolio":[{"title":"Old project","images":["/uploads/x.jpg"]}]}`
	second := `{"services":[{"title":"New"}],"portfolio":[]}`

	for _, payload := range []string{first, second} {
		req := newJSONRequest(t, http.MethodPost, "/api/admin/content", payload)
		w := httptest.NewRecorder()
		h.Update(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	gw := httptest.NewRecorder()
	h.Get(gw, getReq)

	got := unmarshalBody[model.Content](t, gw)
	if len(got.Services) != 1 || got.Services[0].Title != "New" {
		t.Errorf("expected only the new service, got %+v", got.Services)
	}
	if len(got.Portfolio) != 0 {
		t.Errorf("expected empty portfolio after replacement, got %d projects", len(got.Portfolio))
	}

	var images int
	if err := db.QueryRow(`SELECT COUNT(*) FROM project_images`).Scan(&images); err != nil {
		t.Fatalf("counting project images: %v", err)
	}
	if images != 0 {
		t.Errorf("expected orphaned project images removed, got %d", images)
	}
}

// Posting a document-only payload must not disturb the stored services or
// portfolio; only a submitted list replaces them.
func TestContentUpdateOmittedFieldsPreserveSets(t *testing.T) {
	db := testDB(t)
	h := NewContentHandler(content.NewService(db, 50))

	seed := `{"services":[{"title":"Design"},{"title":"Build"}],"portfolio":[{"title":"Project","images":["/uploads/a.jpg"]}]}`
	req := newJSONRequest(t, http.MethodPost, "/api/admin/content", seed)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("seeding update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	partial := `{"homepage":{"headline":"hi"}}`
	req = newJSONRequest(t, http.MethodPost, "/api/admin/content", partial)
	w = httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("partial update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	gw := httptest.NewRecorder()
	h.Get(gw, getReq)

	got := unmarshalBody[model.Content](t, gw)
	if len(got.Services) != 2 {
		t.Errorf("expected 2 services preserved, got %d", len(got.Services))
	}
	if len(got.Portfolio) != 1 {
		t.Errorf("expected portfolio preserved, got %d projects", len(got.Portfolio))
	}
	if !strings.Contains(string(got.Homepage), "hi") {
		t.Errorf("homepage document not updated: %s", got.Homepage)
	}
}

func TestContentUpdateRejectsNonObjectDocument(t *testing.T) {
	db := testDB(t)
	h := NewContentHandler(content.NewService(db, 50))

	req := newJSONRequest(t, http.MethodPost, "/api/admin/content", `{"homepage": "just a string"}`)
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	// The rejected save must not leave a snapshot behind.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM content_snapshots`).Scan(&count); err != nil {
		t.Fatalf("counting snapshots: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no snapshot rows, got %d", count)
	}
}

func TestContentUpdateSanitizesMarkup(t *testing.T) {
	db := testDB(t)
	h := NewContentHandler(content.NewService(db, 50))

	payload := `{
		"homepage": {"intro": "<p>Hello</p><script>alert(1)</script>"},
		"services": [{"title": "Design<script>alert(2)</script>", "description": "ok"}]
	}`
	req := newJSONRequest(t, http.MethodPost, "/api/admin/content", payload)
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	gw := httptest.NewRecorder()
	h.Get(gw, getReq)

	got := unmarshalBody[model.Content](t, gw)

	var homepage struct {
		Intro string `json:"intro"`
	}
	if err := json.Unmarshal(got.Homepage, &homepage); err != nil {
		t.Fatalf("decoding homepage document: %v", err)
	}
	if strings.Contains(homepage.Intro, "<script>") {
		t.Errorf("script tag survived sanitization: %s", homepage.Intro)
	}
	if !strings.Contains(homepage.Intro, "<p>Hello</p>") {
		t.Errorf("benign markup was stripped: %s", homepage.Intro)
	}
	if strings.Contains(got.Services[0].Title, "<script>") {
		t.Errorf("script tag survived in service title: %s", got.Services[0].Title)
	}
}
