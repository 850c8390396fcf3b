// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package comment

import (
	"context"

	"github.com/mgoullet/scrib/pkg/pagination"
	"github.com/mgoullet/scrib/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	repository Repository
	articles   ArticleSource
	admins     AdminChecker
}

// NewService constructs the comment [Service].
func NewService(repository Repository, articles ArticleSource, admins AdminChecker) *Service {
	return &Service{
		repository: repository,
		articles:   articles,
		admins:     admins,
	}
}

/*
List returns one page of comments across all articles, newest first, plus
the total count. Open to anonymous callers.
*/
func (service *Service) List(context context.Context, page pagination.Params) ([]*Comment, int, error) {
	return service.repository.List(context, page)
}

/*
Get returns a single comment. Open to anonymous callers.

Returns:
  - *Comment: Hydrated entity
  - error: ErrCommentNotFound or database retrieval failures
*/
func (service *Service) Get(context context.Context, id string) (*Comment, error) {
	return service.repository.FindByID(context, id)
}

/*
ListForArticle returns every comment on the article, oldest first. Open to
anonymous callers.
*/
func (service *Service) ListForArticle(context context.Context, articleID string) ([]*Comment, error) {
	return service.repository.ListForArticle(context, articleID)
}

/*
Create attaches a new comment to an article, owned by the caller.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - articleID: string
  - body: string

Returns:
  - *Comment: The persisted entity
  - error: The article domain's not-found error when the article is missing,
    or database failures
*/
func (service *Service) Create(context context.Context, callerID, articleID, body string) (*Comment, error) {
	exists, err := service.articles.Exists(context, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrArticleGone
	}

	comment := &Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		Body:      body,
		OwnerID:   callerID,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
Update replaces a comment's body under the owner-or-admin rule.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - id: string
  - body: string

Returns:
  - *Comment: The updated entity
  - error: ErrCommentNotFound, apperr.Forbidden, or database failures
*/
func (service *Service) Update(context context.Context, callerID, id, body string) (*Comment, error) {
	callerIsAdmin, err := service.admins.IsAdmin(context, callerID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{ID: id, Body: body}
	if err := service.repository.Update(context, comment, callerID, callerIsAdmin); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

/*
Delete removes a comment under the owner-or-admin rule.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - id: string

Returns:
  - error: ErrCommentNotFound, apperr.Forbidden, or database failures
*/
func (service *Service) Delete(context context.Context, callerID, id string) error {
	callerIsAdmin, err := service.admins.IsAdmin(context, callerID)
	if err != nil {
		return err
	}

	return service.repository.Delete(context, id, callerID, callerIsAdmin)
}
