// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the site content access layer: reading the
// current content aggregate and atomically replacing it from an admin
// editor submission.
package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/osite-go/internal/model"
	"github.com/olegiv/osite-go/internal/store"
)

// ValidationError marks a rejected update payload as a client error rather
// than a server failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// IsValidationError reports whether err stems from an invalid update payload.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Service provides content aggregate reads and writes on top of the store.
type Service struct {
	db        *sql.DB
	queries   *store.Queries
	sanitizer *bluemonday.Policy
	keep      int64 // snapshots retained by PruneSnapshots
}

// NewService creates a content service. keep is the number of newest
// snapshots retained when pruning; values below 1 are clamped to 1 so the
// current content can never be pruned away.
func NewService(db *sql.DB, keep int) *Service {
	if keep < 1 {
		keep = 1
	}
	return &Service{
		db:        db,
		queries:   store.New(db),
		sanitizer: bluemonday.UGCPolicy(),
		keep:      int64(keep),
	}
}

// GetCurrent returns the full content aggregate: the newest snapshot's
// section documents plus services and portfolio projects in display order.
// A database that has never been written returns empty documents and empty
// lists rather than an error.
func (s *Service) GetCurrent(ctx context.Context) (model.Content, error) {
	content := model.Content{
		Homepage:  model.EmptyDoc,
		About:     model.EmptyDoc,
		Contact:   model.EmptyDoc,
		Services:  []model.Service{},
		Portfolio: []model.PortfolioProject{},
	}

	snapshot, err := s.queries.GetLatestContentSnapshot(ctx)
	switch {
	case err == nil:
		content.Homepage = json.RawMessage(snapshot.Homepage)
		content.About = json.RawMessage(snapshot.About)
		content.Contact = json.RawMessage(snapshot.Contact)
	case errors.Is(err, sql.ErrNoRows):
		// No snapshot yet, serve the empty documents.
	default:
		return model.Content{}, fmt.Errorf("loading latest snapshot: %w", err)
	}

	services, err := s.queries.ListServices(ctx)
	if err != nil {
		return model.Content{}, fmt.Errorf("listing services: %w", err)
	}
	for _, svc := range services {
		content.Services = append(content.Services, model.Service{
			ID:          svc.ID,
			Title:       svc.Title,
			Description: svc.Description,
			Position:    svc.Position,
		})
	}

	projects, err := s.queries.ListPortfolioProjects(ctx)
	if err != nil {
		return model.Content{}, fmt.Errorf("listing portfolio projects: %w", err)
	}
	images, err := s.queries.ListProjectImages(ctx)
	if err != nil {
		return model.Content{}, fmt.Errorf("listing project images: %w", err)
	}

	imagesByProject := make(map[int64][]model.ProjectImage, len(projects))
	for _, img := range images {
		imagesByProject[img.ProjectID] = append(imagesByProject[img.ProjectID], model.ProjectImage{
			ID:        img.ID,
			ProjectID: img.ProjectID,
			URL:       img.Url,
		})
	}

	for _, p := range projects {
		project := model.PortfolioProject{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Position:    p.Position,
			Images:      imagesByProject[p.ID],
		}
		if project.Images == nil {
			project.Images = []model.ProjectImage{}
		}
		content.Portfolio = append(content.Portfolio, project)
	}

	return content, nil
}

// Replace applies an admin content submission in a single transaction:
// a new snapshot row is appended (history is never updated in place) and
// the services and portfolio sets are fully replaced in submitted order.
// Either everything commits or nothing does, so readers never observe a
// half-replaced site.
func (s *Service) Replace(ctx context.Context, update model.ContentUpdate) (model.Content, error) {
	homepage, err := s.sanitizeDoc(update.Homepage)
	if err != nil {
		return model.Content{}, fmt.Errorf("homepage document: %w", err)
	}
	about, err := s.sanitizeDoc(update.About)
	if err != nil {
		return model.Content{}, fmt.Errorf("about document: %w", err)
	}
	contact, err := s.sanitizeDoc(update.Contact)
	if err != nil {
		return model.Content{}, fmt.Errorf("contact document: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Content{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	now := time.Now()

	if _, err := qtx.CreateContentSnapshot(ctx, store.CreateContentSnapshotParams{
		Homepage:  homepage,
		About:     about,
		Contact:   contact,
		CreatedAt: now,
	}); err != nil {
		return model.Content{}, fmt.Errorf("creating snapshot: %w", err)
	}

	// An omitted services or portfolio field leaves the stored set
	// untouched; only a submitted list (including an empty one) replaces it.
	if update.Services != nil {
		if err := qtx.DeleteAllServices(ctx); err != nil {
			return model.Content{}, fmt.Errorf("clearing services: %w", err)
		}
		for i, svc := range *update.Services {
			if _, err := qtx.CreateService(ctx, store.CreateServiceParams{
				Title:       s.sanitizer.Sanitize(svc.Title),
				Description: s.sanitizer.Sanitize(svc.Description),
				Position:    int64(i),
			}); err != nil {
				return model.Content{}, fmt.Errorf("creating service %d: %w", i, err)
			}
		}
	}

	if update.Portfolio != nil {
		// Images first: the FK cascade would also remove them with the
		// projects, but clearing explicitly keeps the replace order obvious.
		if err := qtx.DeleteAllProjectImages(ctx); err != nil {
			return model.Content{}, fmt.Errorf("clearing project images: %w", err)
		}
		if err := qtx.DeleteAllPortfolioProjects(ctx); err != nil {
			return model.Content{}, fmt.Errorf("clearing portfolio projects: %w", err)
		}
		for i, proj := range *update.Portfolio {
			created, err := qtx.CreatePortfolioProject(ctx, store.CreatePortfolioProjectParams{
				Title:       s.sanitizer.Sanitize(proj.Title),
				Description: s.sanitizer.Sanitize(proj.Description),
				Position:    int64(i),
			})
			if err != nil {
				return model.Content{}, fmt.Errorf("creating portfolio project %d: %w", i, err)
			}
			for _, img := range proj.Images {
				if img.URL == "" {
					continue
				}
				if _, err := qtx.CreateProjectImage(ctx, store.CreateProjectImageParams{
					ProjectID: created.ID,
					Url:       img.URL,
				}); err != nil {
					return model.Content{}, fmt.Errorf("creating project image: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Content{}, fmt.Errorf("committing content replace: %w", err)
	}

	slog.Info("content replaced",
		"category", model.EventCategoryContent,
		"services_submitted", update.Services != nil,
		"projects_submitted", update.Portfolio != nil,
	)

	return s.GetCurrent(ctx)
}

// PruneSnapshots deletes all but the newest retained snapshots and returns
// how many rows were removed.
func (s *Service) PruneSnapshots(ctx context.Context) (int64, error) {
	pruned, err := s.queries.PruneContentSnapshots(ctx, s.keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	if pruned > 0 {
		slog.Info("pruned content snapshots",
			"category", model.EventCategoryContent,
			"pruned", pruned,
			"kept", s.keep,
		)
	}
	return pruned, nil
}

// sanitizeDoc validates a section document and sanitizes every string leaf
// with the HTML policy. A nil or empty document becomes the empty object.
// The document must be a JSON object; anything else is rejected so a typo
// in the editor cannot replace a whole section with a scalar.
func (s *Service) sanitizeDoc(doc json.RawMessage) (string, error) {
	if len(doc) == 0 {
		return string(model.EmptyDoc), nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return "", &ValidationError{msg: "section document must be a JSON object"}
	}

	cleaned := s.sanitizeValue(parsed)

	out, err := json.Marshal(cleaned)
	if err != nil {
		return "", fmt.Errorf("re-encoding document: %w", err)
	}
	return string(out), nil
}

// sanitizeValue walks an unmarshalled JSON value and sanitizes string leaves.
func (s *Service) sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return s.sanitizer.Sanitize(val)
	case map[string]any:
		for k, item := range val {
			val[k] = s.sanitizeValue(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = s.sanitizeValue(item)
		}
		return val
	default:
		return val
	}
}
