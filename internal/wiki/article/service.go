// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package article

import (
	"context"
	"fmt"

	"github.com/mgoullet/scrib/internal/wiki/comment"
	"github.com/mgoullet/scrib/pkg/pagination"
	"github.com/mgoullet/scrib/pkg/slug"
	"github.com/mgoullet/scrib/pkg/uuid"
)

// CommentSource lists the comments attached to an article, used to hydrate
// detail reads.
type CommentSource interface {
	ListForArticle(context context.Context, articleID string) ([]*comment.Comment, error)
}

// Service implements the article use cases.
type Service struct {
	repository Repository
	comments   CommentSource
	admins     AdminChecker
}

// NewService constructs the article [Service].
func NewService(repository Repository, comments CommentSource, admins AdminChecker) *Service {
	return &Service{
		repository: repository,
		comments:   comments,
		admins:     admins,
	}
}

// Input carries the mutable fields of an article.
type Input struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
	ThemeID  int    `json:"themeId"`
}

/*
List returns one page of articles, newest first. Open to anonymous callers.

Parameters:
  - context: context.Context
  - page: pagination.Params

Returns:
  - []*Article: One page, without comments
  - int: Total article count for pagination metadata
  - error: Database retrieval failures
*/
func (service *Service) List(context context.Context, page pagination.Params) ([]*Article, int, error) {
	return service.repository.List(context, page)
}

/*
Get returns a single article with its comments. Open to anonymous callers.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: Hydrated entity including comments
  - error: ErrArticleNotFound or database retrieval failures
*/
func (service *Service) Get(context context.Context, id string) (*Article, error) {
	article, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	comments, err := service.comments.ListForArticle(context, id)
	if err != nil {
		return nil, fmt.Errorf("article_comments_hydrate_failed: %w", err)
	}
	article.Comments = comments

	return article, nil
}

/*
Create persists a new article owned by the caller.

Description: The slug is derived from the title. Ownership is taken from the
authenticated identity, never from the payload.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - input: Input

Returns:
  - *Article: The persisted entity
  - error: Database failures
*/
func (service *Service) Create(context context.Context, callerID string, input Input) (*Article, error) {
	article := &Article{
		ID:       uuid.New(),
		Title:    input.Title,
		Slug:     slug.From(input.Title),
		Body:     input.Body,
		Priority: input.Priority,
		ThemeID:  input.ThemeID,
		OwnerID:  callerID,
	}

	if err := service.repository.Create(context, article); err != nil {
		return nil, err
	}

	return article, nil
}

/*
Update replaces an article's mutable fields under the owner-or-admin rule.

Description: The administrator check hits the live role store, so a revoked
admin is refused even while their token still carries the role. The actual
ownership decision happens inside the storage transaction, against a locked
row.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - id: string
  - input: Input

Returns:
  - *Article: The updated entity
  - error: ErrArticleNotFound, apperr.Forbidden, or database failures
*/
func (service *Service) Update(context context.Context, callerID, id string, input Input) (*Article, error) {
	callerIsAdmin, err := service.admins.IsAdmin(context, callerID)
	if err != nil {
		return nil, err
	}

	article := &Article{
		ID:       id,
		Title:    input.Title,
		Slug:     slug.From(input.Title),
		Body:     input.Body,
		Priority: input.Priority,
		ThemeID:  input.ThemeID,
	}

	if err := service.repository.Update(context, article, callerID, callerIsAdmin); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

/*
Delete removes an article under the owner-or-admin rule.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - id: string

Returns:
  - error: ErrArticleNotFound, apperr.Forbidden, or database failures
*/
func (service *Service) Delete(context context.Context, callerID, id string) error {
	callerIsAdmin, err := service.admins.IsAdmin(context, callerID)
	if err != nil {
		return err
	}

	return service.repository.Delete(context, id, callerID, callerIsAdmin)
}
