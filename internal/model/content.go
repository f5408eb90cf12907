// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application: the content aggregate served to the public site, the
// update payload posted by the admin editor, and contact requests.
package model

import (
	"encoding/json"
	"time"
)

// EmptyDoc is the JSON document used for homepage/about/contact sections
// before the first snapshot exists.
var EmptyDoc = json.RawMessage("{}")

// Content is the full aggregate returned by the content read endpoints:
// the newest snapshot's section documents plus ordered services and
// portfolio projects.
type Content struct {
	Homepage  json.RawMessage    `json:"homepage"`
	About     json.RawMessage    `json:"about"`
	Contact   json.RawMessage    `json:"contact"`
	Services  []Service          `json:"services"`
	Portfolio []PortfolioProject `json:"portfolio"`
}

// Service is one entry of the services section. Position is the 0-based
// display order; the set is fully replaced on every content save, so rows
// have no stable identity across saves.
type Service struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int64  `json:"order"`
}

// PortfolioProject is one portfolio entry with its owned images.
type PortfolioProject struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Position    int64          `json:"order"`
	Images      []ProjectImage `json:"images"`
}

// ProjectImage is an image owned by a portfolio project. URL is a path
// returned by the upload endpoint (e.g. /uploads/169...-photo.jpg).
type ProjectImage struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	URL       string `json:"url"`
}

// ContentUpdate is the payload accepted by the content write endpoint.
// Section documents are stored opaquely; services and portfolio replace
// the existing sets in submitted order. Both are pointers so an absent
// field can be told apart from an explicit empty list: omitting a field
// leaves the stored set untouched, submitting [] clears it.
type ContentUpdate struct {
	Homepage  json.RawMessage `json:"homepage"`
	About     json.RawMessage `json:"about"`
	Contact   json.RawMessage `json:"contact"`
	Services  *[]ServiceInput `json:"services"`
	Portfolio *[]ProjectInput `json:"portfolio"`
}

// ServiceInput is one submitted service entry. Display order is the array
// index in the update payload.
type ServiceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectInput is one submitted portfolio entry.
type ProjectInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Images      []ImageRef `json:"images"`
}

// ImageRef is an image reference in an update payload. The admin editor
// historically posted either a bare URL string or an {url: ...} object, so
// both forms are accepted.
type ImageRef struct {
	URL string `json:"url"`
}

// UnmarshalJSON accepts either "path" or {"url": "path"}.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.URL)
	}
	type plain ImageRef
	return json.Unmarshal(data, (*plain)(r))
}

// ContactRequest is an inbound contact-form submission. Append-only:
// requests are never mutated or deleted through the API.
type ContactRequest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"date"`
}
