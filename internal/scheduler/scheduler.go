// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs background maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/osite-go/internal/content"
)

// Scheduler handles periodic maintenance like snapshot pruning.
type Scheduler struct {
	content *content.Service
	cron    *cron.Cron
	logger  *slog.Logger
}

// New creates a new scheduler instance.
func New(contentSvc *content.Service, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		content: contentSvc,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start begins the scheduler with a nightly snapshot pruning job.
func (s *Scheduler) Start() error {
	// Every night at 03:30
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.pruneSnapshots(); err != nil {
			s.logger.Error("failed to prune content snapshots", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneSnapshots trims content snapshot history to the retention limit.
func (s *Scheduler) pruneSnapshots() error {
	pruned, err := s.content.PruneSnapshots(context.Background())
	if err != nil {
		return err
	}
	if pruned > 0 {
		s.logger.Info("scheduled snapshot prune completed", "pruned", pruned)
	}
	return nil
}
