// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/olegiv/osite-go/internal/model"
	"github.com/olegiv/osite-go/internal/store"
)

// ContactHandler handles contact-form submissions and the admin inbox.
type ContactHandler struct {
	queries *store.Queries
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *sql.DB) *ContactHandler {
	return &ContactHandler{queries: store.New(db)}
}

type contactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Create accepts a public contact-form submission.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if details := validateContactSubmission(req); len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	created, err := h.queries.CreateContactRequest(r.Context(), store.CreateContactRequestParams{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Service:   strings.TrimSpace(req.Service),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to store contact request", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to submit request")
		return
	}

	slog.Info("contact request received",
		"category", model.EventCategoryContact,
		"id", created.ID,
	)

	writeJSONSuccess(w, nil)
}

// List returns all contact requests, newest first. Admin only.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListContactRequests(r.Context())
	if err != nil {
		slog.Error("failed to list contact requests", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load contact requests")
		return
	}

	requests := make([]model.ContactRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, model.ContactRequest{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			Service:   row.Service,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, requests)
}

// validateContactSubmission returns field-level validation errors.
func validateContactSubmission(req contactSubmission) map[string]string {
	details := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		details["message"] = "Message is required"
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		details["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "Email is invalid"
	}

	return details
}
