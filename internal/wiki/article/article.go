// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

// Package article contains the wiki article domain: entities, use cases,
// storage contracts and the HTTP delivery layer.
package article

import (
	"time"

	"github.com/mgoullet/scrib/internal/wiki/comment"
)

// Priority levels accepted on an article.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// MaxTitleLength bounds the article title.
const MaxTitleLength = 100

// Article represents a single wiki page.
//
// OwnerID is set once at creation from the authenticated caller and is
// immutable afterwards: updates never touch it.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Priority  string    `json:"priority"`
	ThemeID   int       `json:"themeId"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Comments is hydrated on detail reads only.
	Comments []*comment.Comment `json:"comments,omitempty"`
}
