package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/osite-go/internal/auth"
)

// Seed creates the initial admin user when the users table is empty.
// The password comes from configuration; when blank, a random one is
// generated and printed once so a fresh install is never left open with
// a well-known credential.
func Seed(ctx context.Context, db *sql.DB, username, password string) error {
	queries := New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	generated := false
	if password == "" {
		password, err = randomPassword()
		if err != nil {
			return fmt.Errorf("generating admin password: %w", err)
		}
		generated = true
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// Another process may have seeded concurrently; the unique
		// constraint on username makes that harmless.
		if existing, lookupErr := queries.GetUserByUsername(ctx, username); lookupErr == nil {
			slog.Info("admin user already exists, skipping seed", "id", existing.ID)
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	if generated {
		slog.Info("created admin user with generated password",
			"id", user.ID,
			"username", user.Username,
			"password", password,
		)
	} else {
		slog.Info("created admin user", "id", user.ID, "username", user.Username)
	}

	return nil
}

// ErrNoAdmin is returned by RequireAdminUser when no user exists.
var ErrNoAdmin = errors.New("no admin user configured")

// RequireAdminUser verifies at least one admin user exists.
func RequireAdminUser(ctx context.Context, db *sql.DB) error {
	count, err := New(db).CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count == 0 {
		return ErrNoAdmin
	}
	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
