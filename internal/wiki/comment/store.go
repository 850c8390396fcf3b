// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package comment

import (
	"context"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/pkg/pagination"
)

var (
	// ErrCommentNotFound is returned when no comment matches the lookup key.
	ErrCommentNotFound = apperr.NotFound("Comment")

	// ErrArticleGone is returned when a comment targets an article that
	// does not exist (or no longer does).
	ErrArticleGone = apperr.NotFound("Article")
)

// Repository defines the data access contract for comments.
//
// Update and Delete follow the same locked owner-or-admin discipline as the
// article store: the owner row is locked and checked inside the mutation's
// own transaction.
type Repository interface {

	/*
		FindByID returns the comment with the given ID.

		Returns:
		  - *Comment: Hydrated entity
		  - error: ErrCommentNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		List returns one page of comments across all articles, newest
		first, plus the total count.
	*/
	List(context context.Context, page pagination.Params) ([]*Comment, int, error)

	/*
		ListForArticle returns every comment on the article, oldest first.
	*/
	ListForArticle(context context.Context, articleID string) ([]*Comment, error)

	/*
		Create persists a brand-new comment.
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update replaces the comment body if the caller passes the
		owner-or-admin rule.

		Returns:
		  - error: ErrCommentNotFound, apperr.Forbidden, or database failures
	*/
	Update(context context.Context, comment *Comment, callerID string, callerIsAdmin bool) error

	/*
		Delete removes the comment if the caller passes the owner-or-admin
		rule.

		Returns:
		  - error: ErrCommentNotFound, apperr.Forbidden, or database failures
	*/
	Delete(context context.Context, id string, callerID string, callerIsAdmin bool) error
}

// ArticleSource answers article existence checks without importing the
// article domain.
type ArticleSource interface {
	Exists(context context.Context, articleID string) (bool, error)
}

// AdminChecker answers live administrator checks.
type AdminChecker interface {
	IsAdmin(context context.Context, userID string) (bool, error)
}
