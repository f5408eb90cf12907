// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/osite-go/internal/service"
)

// UploadHandler handles admin image uploads.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload accepts one multipart image in the "image" field and returns the
// public /uploads/ path of the stored file.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Some slack over the limit so multipart framing doesn't trip the cap
	// before the per-file size check does.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+64*1024)

	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, http.StatusBadRequest, "File too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploads.Upload(file, header)
	if err != nil {
		slog.Warn("upload rejected", "filename", header.Filename, "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSONSuccess(w, map[string]any{"path": result.URL})
}
