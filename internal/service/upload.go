// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements application services above the store layer.
package service

import (
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/osite-go/internal/imaging"
	"github.com/olegiv/osite-go/internal/model"
	"github.com/olegiv/osite-go/internal/util"
)

// Upload limits
const (
	MaxUploadSize    = 5 * 1024 * 1024 // 5MiB
	DefaultUploadDir = "./uploads"
)

// UploadResult contains the result of an image upload.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// UploadService handles admin image uploads for the editor.
type UploadService struct {
	processor *imaging.Processor
	uploadDir string
}

// NewUploadService creates a new upload service writing under uploadDir.
func NewUploadService(uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &UploadService{
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates and stores one uploaded image. The stored name is the
// upload timestamp in milliseconds joined to the sanitized original
// filename, and the returned URL is the /uploads/ path the editor embeds
// in content. Only declared image/* types are accepted.
func (s *UploadService) Upload(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("file type %s is not allowed, only images can be uploaded", mimeType)
	}

	filename := s.storedName(header.Filename)

	var (
		result *imaging.ProcessResult
		err    error
	)
	if s.processor.IsProcessable(mimeType) {
		result, err = s.processor.ProcessImage(file, filename)
	} else {
		// Declared image type the decoders can't handle (e.g. SVG):
		// store the bytes as received.
		result, err = s.processor.SaveRaw(file, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	// Thumbnails are best effort, a failure never rejects the upload.
	if s.processor.IsProcessable(result.MimeType) {
		if _, thumbErr := s.processor.CreateThumbnail(result.FilePath, filename); thumbErr != nil {
			slog.Warn("thumbnail generation failed",
				"category", model.EventCategoryMedia,
				"filename", filename,
				"error", thumbErr,
			)
		}
	}

	slog.Info("image uploaded",
		"category", model.EventCategoryMedia,
		"filename", filename,
		"size", result.Size,
	)

	return &UploadResult{
		Filename: filename,
		URL:      "/uploads/" + filename,
		MimeType: result.MimeType,
		Size:     result.Size,
		Width:    result.Width,
		Height:   result.Height,
	}, nil
}

// storedName builds the on-disk filename. Millisecond timestamps make
// collisions unlikely; when two uploads of the same name land in the same
// millisecond a short random suffix keeps them apart.
func (s *UploadService) storedName(original string) string {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), util.SanitizeFilename(original))
	if _, err := os.Stat(filepath.Join(s.uploadDir, name)); err == nil {
		name = fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String()[:8], util.SanitizeFilename(original))
	}
	return name
}
