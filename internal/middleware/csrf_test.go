// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"testing"
)

func TestDefaultCSRFConfigDevelopment(t *testing.T) {
	authKey := []byte("12345678901234567890123456789012")
	cfg := DefaultCSRFConfig(authKey, true)

	if len(cfg.AuthKey) != 32 {
		t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
	}
	if len(cfg.TrustedOrigins) == 0 {
		t.Error("expected localhost origins trusted in development")
	}
}

func TestDefaultCSRFConfigProduction(t *testing.T) {
	authKey := []byte("12345678901234567890123456789012")
	cfg := DefaultCSRFConfig(authKey, false)

	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("expected no trusted origins in production, got %v", cfg.TrustedOrigins)
	}
}

func TestCSRFMiddlewareCreation(t *testing.T) {
	authKey := []byte("12345678901234567890123456789012")
	mw := CSRF(DefaultCSRFConfig(authKey, true))
	if mw == nil {
		t.Fatal("expected a middleware function")
	}
}
