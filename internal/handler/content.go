// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/osite-go/internal/content"
	"github.com/olegiv/osite-go/internal/model"
)

// ContentHandler serves the content aggregate and applies admin updates.
type ContentHandler struct {
	content *content.Service
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentSvc *content.Service) *ContentHandler {
	return &ContentHandler{content: contentSvc}
}

// Get returns the current content aggregate. Served both publicly for the
// site renderer and behind the admin gate for the editor.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	current, err := h.content.GetCurrent(r.Context())
	if err != nil {
		slog.Error("failed to load content", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// Update replaces the site content from an admin editor submission.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update model.ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.content.Replace(r.Context(), update)
	if err != nil {
		if content.IsValidationError(err) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save content", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}

	writeJSONSuccess(w, map[string]any{"content": saved})
}
