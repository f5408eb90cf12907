// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/osite-go/internal/model"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		PRAGMA foreign_keys = ON;

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
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestGetCurrentEmpty(t *testing.T) {
	svc := NewService(testDB(t), 50)

	got, err := svc.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}

	if string(got.Homepage) != "{}" || string(got.About) != "{}" || string(got.Contact) != "{}" {
		t.Errorf("expected empty section documents, got %s / %s / %s",
			got.Homepage, got.About, got.Contact)
	}
	if got.Services == nil || got.Portfolio == nil {
		t.Error("expected non-nil empty slices")
	}
	if len(got.Services) != 0 || len(got.Portfolio) != 0 {
		t.Errorf("expected no services or projects, got %d / %d",
			len(got.Services), len(got.Portfolio))
	}
}

func TestReplaceAssignsPositionsFromOrder(t *testing.T) {
	svc := NewService(testDB(t), 50)

	update := model.ContentUpdate{
		Services: &[]model.ServiceInput{
			{Title: "First"},
			{Title: "Second"},
			{Title: "Third"},
		},
	}

	got, err := svc.Replace(context.Background(), update)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if len(got.Services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(got.Services))
	}
	for i, s := range got.Services {
		if s.Position != int64(i) {
			t.Errorf("service %d: expected position %d, got %d", i, i, s.Position)
		}
	}
	if got.Services[1].Title != "Second" {
		t.Errorf("expected submitted order preserved, got %q at index 1", got.Services[1].Title)
	}
}

func TestReplaceStoresProjectImages(t *testing.T) {
	svc := NewService(testDB(t), 50)

	update := model.ContentUpdate{
		Portfolio: &[]model.ProjectInput{
			{
				Title: "Project",
				Images: []model.ImageRef{
					{URL: "/uploads/one.jpg"},
					{URL: ""},
					{URL: "/uploads/two.jpg"},
				},
			},
		},
	}

	got, err := svc.Replace(context.Background(), update)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if len(got.Portfolio) != 1 {
		t.Fatalf("expected 1 project, got %d", len(got.Portfolio))
	}
	// The blank URL is skipped.
	images := got.Portfolio[0].Images
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[0].URL != "/uploads/one.jpg" || images[1].URL != "/uploads/two.jpg" {
		t.Errorf("unexpected image URLs: %q, %q", images[0].URL, images[1].URL)
	}
	if images[0].ProjectID != got.Portfolio[0].ID {
		t.Errorf("image bound to project %d, expected %d", images[0].ProjectID, got.Portfolio[0].ID)
	}
}

// A payload that omits services or portfolio leaves the stored sets alone;
// only an explicit empty list clears them.
func TestReplacePreservesOmittedSets(t *testing.T) {
	svc := NewService(testDB(t), 50)
	ctx := context.Background()

	seed := model.ContentUpdate{
		Services: &[]model.ServiceInput{
			{Title: "Design"},
			{Title: "Build"},
		},
		Portfolio: &[]model.ProjectInput{
			{Title: "Project", Images: []model.ImageRef{{URL: "/uploads/a.jpg"}}},
		},
	}
	if _, err := svc.Replace(ctx, seed); err != nil {
		t.Fatalf("seeding Replace: %v", err)
	}

	// Document-only update, both list fields absent.
	partial := model.ContentUpdate{
		Homepage: json.RawMessage(`{"headline":"hi"}`),
	}
	got, err := svc.Replace(ctx, partial)
	if err != nil {
		t.Fatalf("partial Replace: %v", err)
	}

	if len(got.Services) != 2 {
		t.Errorf("expected 2 services preserved, got %d", len(got.Services))
	}
	if len(got.Portfolio) != 1 || len(got.Portfolio[0].Images) != 1 {
		t.Errorf("expected portfolio preserved, got %+v", got.Portfolio)
	}
	if want := `{"headline":"hi"}`; string(got.Homepage) != want {
		t.Errorf("expected new homepage document %s, got %s", want, got.Homepage)
	}

	// An explicit empty list still clears.
	clearing := model.ContentUpdate{
		Services: &[]model.ServiceInput{},
	}
	got, err = svc.Replace(ctx, clearing)
	if err != nil {
		t.Fatalf("clearing Replace: %v", err)
	}
	if len(got.Services) != 0 {
		t.Errorf("expected services cleared by empty list, got %d", len(got.Services))
	}
	if len(got.Portfolio) != 1 {
		t.Errorf("expected portfolio still preserved, got %d projects", len(got.Portfolio))
	}
}

func TestReplaceAppendsSnapshots(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, 50)
	ctx := context.Background()

	for _, headline := range []string{"v1", "v2", "v3"} {
		update := model.ContentUpdate{
			Homepage: json.RawMessage(`{"headline":"` + headline + `"}`),
		}
		if _, err := svc.Replace(ctx, update); err != nil {
			t.Fatalf("Replace %s: %v", headline, err)
		}
		// Snapshot ordering falls back to id for identical timestamps,
		// but keep them distinct anyway.
		time.Sleep(2 * time.Millisecond)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM content_snapshots`).Scan(&count); err != nil {
		t.Fatalf("counting snapshots: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 snapshot rows, got %d", count)
	}

	got, err := svc.GetCurrent(ctx)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if want := `{"headline":"v3"}`; string(got.Homepage) != want {
		t.Errorf("expected newest snapshot %s, got %s", want, got.Homepage)
	}
}

func TestReplaceRejectsNonObjectDocument(t *testing.T) {
	svc := NewService(testDB(t), 50)

	update := model.ContentUpdate{
		About: json.RawMessage(`[1, 2, 3]`),
	}

	_, err := svc.Replace(context.Background(), update)
	if err == nil {
		t.Fatal("expected an error for a non-object document")
	}
	if !IsValidationError(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestReplaceSanitizesStringLeaves(t *testing.T) {
	svc := NewService(testDB(t), 50)

	update := model.ContentUpdate{
		Homepage: json.RawMessage(`{"intro":"<b>bold</b><script>alert(1)</script>","nested":{"deep":"<img src=x onerror=alert(2)>"}}`),
	}

	got, err := svc.Replace(context.Background(), update)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var doc struct {
		Intro  string `json:"intro"`
		Nested struct {
			Deep string `json:"deep"`
		} `json:"nested"`
	}
	if err := json.Unmarshal(got.Homepage, &doc); err != nil {
		t.Fatalf("decoding homepage: %v", err)
	}
	if doc.Intro != "<b>bold</b>" {
		t.Errorf("expected script stripped and bold kept, got %q", doc.Intro)
	}
	if strings.Contains(doc.Nested.Deep, "onerror") {
		t.Errorf("event handler survived in nested leaf: %q", doc.Nested.Deep)
	}
}

func TestPruneSnapshotsKeepsNewest(t *testing.T) {
	db := testDB(t)
	svc := NewService(db, 2)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := db.Exec(
			`INSERT INTO content_snapshots (homepage, about, contact, created_at) VALUES (?, '{}', '{}', ?)`,
			fmt.Sprintf(`{"v":%d}`, i), base.Add(time.Duration(i)*time.Hour),
		)
		if err != nil {
			t.Fatalf("inserting snapshot: %v", err)
		}
	}

	pruned, err := svc.PruneSnapshots(ctx)
	if err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}
	if pruned != 3 {
		t.Errorf("expected 3 pruned rows, got %d", pruned)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM content_snapshots`).Scan(&count); err != nil {
		t.Fatalf("counting snapshots: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 remaining snapshots, got %d", count)
	}

	// The newest snapshot must survive pruning.
	var homepage string
	err = db.QueryRow(`SELECT homepage FROM content_snapshots ORDER BY created_at DESC LIMIT 1`).Scan(&homepage)
	if err != nil {
		t.Fatalf("reading newest snapshot: %v", err)
	}
	if homepage != `{"v":4}` {
		t.Errorf("expected newest snapshot to survive, got %s", homepage)
	}
}
