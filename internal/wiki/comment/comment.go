// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

// Package comment contains the article comment domain.
package comment

import "time"

// MaxBodyLength bounds the comment body.
const MaxBodyLength = 100

// Comment is a short remark attached to an article.
//
// OwnerID is set once at creation from the authenticated caller and is
// immutable afterwards.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	Body      string    `json:"body"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
