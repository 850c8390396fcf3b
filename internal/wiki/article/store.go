// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package article

import (
	"context"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/pkg/pagination"
)

// ErrArticleNotFound is returned when no article matches the lookup key.
var ErrArticleNotFound = apperr.NotFound("Article")

// Repository defines the data access contract for articles.
//
// # Ownership
//
// Update and Delete are conditional mutations: the implementation must lock
// the current owner row, apply the owner-or-admin rule against it, and
// mutate in the same transaction. A concurrent owner change or delete can
// therefore never slip between the check and the write.
type Repository interface {

	/*
		FindByID returns the article with the given ID, without comments.

		Returns:
		  - *Article: Hydrated entity
		  - error: ErrArticleNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Article, error)

	/*
		List returns one page of articles, newest first, without comments.
	*/
	List(context context.Context, page pagination.Params) ([]*Article, int, error)

	/*
		Create persists a brand-new article.
	*/
	Create(context context.Context, article *Article) error

	/*
		Update replaces the article's mutable fields if the caller passes
		the owner-or-admin rule. The owner is never changed.

		Returns:
		  - error: ErrArticleNotFound, apperr.Forbidden, or database failures
	*/
	Update(context context.Context, article *Article, callerID string, callerIsAdmin bool) error

	/*
		Delete removes the article (and its comments, by cascade) if the
		caller passes the owner-or-admin rule.

		Returns:
		  - error: ErrArticleNotFound, apperr.Forbidden, or database failures
	*/
	Delete(context context.Context, id string, callerID string, callerIsAdmin bool) error
}

// AdminChecker answers live administrator checks. Token role claims are
// never used for this decision.
type AdminChecker interface {
	IsAdmin(context context.Context, userID string) (bool, error)
}
