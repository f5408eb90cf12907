// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web holds the embedded static frontend: the public site and the
// admin editor.
package web

import "embed"

//go:embed all:static
var Static embed.FS
