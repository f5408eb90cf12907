// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// upload filename sanitization with Unicode transliteration.
package util

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// whitespaceRegex matches runs of whitespace
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// unsafeFilenameRegex matches anything outside the safe filename alphabet
	unsafeFilenameRegex = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// SanitizeFilename converts an arbitrary client-supplied filename into a
// safe one: path components are stripped, non-ASCII characters are
// transliterated, whitespace runs become underscores, and anything outside
// [A-Za-z0-9._-] is removed. A name that sanitizes to nothing becomes "file".
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = unidecode.Unidecode(base)
	base = whitespaceRegex.ReplaceAllString(base, "_")
	base = unsafeFilenameRegex.ReplaceAllString(base, "")
	base = strings.Trim(base, "._")
	if base == "" {
		return "file"
	}
	return base
}
