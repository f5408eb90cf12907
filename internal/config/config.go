// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"OSITE_DB_PATH" envDefault:"./data/osite.db"`
	SessionSecret string `env:"OSITE_SESSION_SECRET,required"`
	ServerHost    string `env:"OSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OSITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OSITE_ENV" envDefault:"development"`
	LogLevel      string `env:"OSITE_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"OSITE_UPLOADS_DIR" envDefault:"./uploads"`

	// Initial admin credentials, used only when the users table is empty.
	AdminUsername string `env:"OSITE_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"OSITE_ADMIN_PASSWORD"`

	// Content snapshot retention. Every save inserts a new snapshot row;
	// a nightly job keeps the newest SnapshotKeep and prunes the rest.
	SnapshotKeep int `env:"OSITE_SNAPSHOT_KEEP" envDefault:"50"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("OSITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("OSITE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.SnapshotKeep < 1 {
		return nil, fmt.Errorf("OSITE_SNAPSHOT_KEEP must be at least 1, got %d", cfg.SnapshotKeep)
	}

	if strings.TrimSpace(cfg.AdminUsername) == "" {
		return nil, fmt.Errorf("OSITE_ADMIN_USERNAME must not be blank")
	}

	return cfg, nil
}
