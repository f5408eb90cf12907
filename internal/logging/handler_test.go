package logging

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/osite-go/internal/model"
	"github.com/olegiv/osite-go/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			category TEXT NOT NULL,
			message TEXT NOT NULL,
			user_id INTEGER,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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

func testLogger(db *sql.DB) *slog.Logger {
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, db))
}

func lastEvent(t *testing.T, db *sql.DB) store.Event {
	t.Helper()
	events, err := store.New(db).ListRecentEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected an event row")
	}
	return events[0]
}

func TestWarnWritesEvent(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Warn("login failed: user not found",
		"category", model.EventCategoryAuth,
		"username", "ghost",
	)

	event := lastEvent(t, db)
	if event.Level != model.EventLevelWarning {
		t.Errorf("expected warning level, got %q", event.Level)
	}
	if event.Category != model.EventCategoryAuth {
		t.Errorf("expected auth category, got %q", event.Category)
	}
	if event.Message != "login failed: user not found" {
		t.Errorf("unexpected message %q", event.Message)
	}
}

func TestInfoNotWrittenByDefault(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Info("routine message")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events for INFO, got %d", len(events))
	}
}

func TestCustomLevelForwardsInfo(t *testing.T) {
	db := testDB(t)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewEventLogHandlerWithLevel(inner, db, slog.LevelInfo))

	logger.Info("content replaced", "category", model.EventCategoryContent)

	event := lastEvent(t, db)
	if event.Level != model.EventLevelInfo {
		t.Errorf("expected info level, got %q", event.Level)
	}
	if event.Category != model.EventCategoryContent {
		t.Errorf("expected content category, got %q", event.Category)
	}
}

func TestCategoryInferredFromMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"login rate limit exceeded", model.EventCategoryAuth},
		{"snapshot pruning failed", model.EventCategoryContent},
		{"contact inbox overflow", model.EventCategoryContact},
		{"thumbnail upload error", model.EventCategoryMedia},
		{"disk almost full", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			db := testDB(t)
			logger := testLogger(db)

			logger.Error(tt.message)

			event := lastEvent(t, db)
			if event.Category != tt.want {
				t.Errorf("message %q: expected category %q, got %q", tt.message, tt.want, event.Category)
			}
		})
	}
}

func TestMetadataCapturesAttributes(t *testing.T) {
	db := testDB(t)
	logger := testLogger(db)

	logger.Error("upload failed",
		"category", model.EventCategoryMedia,
		"filename", "a\"b.png",
	)

	event := lastEvent(t, db)
	if event.Metadata != `{"filename":"a\"b.png"}` {
		t.Errorf("unexpected metadata %q", event.Metadata)
	}
}
