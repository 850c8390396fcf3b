// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package theme

import (
	"context"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/pkg/slug"
)

// Service implements the theme use cases. Every operation, reads included,
// requires a live administrator check.
type Service struct {
	repository Repository
	admins     AdminChecker
}

// NewService constructs the theme [Service].
func NewService(repository Repository, admins AdminChecker) *Service {
	return &Service{repository: repository, admins: admins}
}

// requireAdmin refuses the operation unless the caller currently holds the
// administrator role.
func (service *Service) requireAdmin(context context.Context, callerID string) error {
	isAdmin, err := service.admins.IsAdmin(context, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperr.Forbidden("Theme management requires administrator access")
	}
	return nil
}

/*
List returns every theme. Administrators only, reads included: the whole
taxonomy surface is an administration tool, not public content.
*/
func (service *Service) List(context context.Context, callerID string) ([]*Theme, error) {
	if err := service.requireAdmin(context, callerID); err != nil {
		return nil, err
	}

	return service.repository.List(context)
}

/*
Get returns a single theme. Administrators only.
*/
func (service *Service) Get(context context.Context, callerID string, id int) (*Theme, error) {
	if err := service.requireAdmin(context, callerID); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

/*
Create registers a new theme. Administrators only.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - name: string

Returns:
  - *Theme: The persisted entity with its generated ID
  - error: apperr.Forbidden or database failures
*/
func (service *Service) Create(context context.Context, callerID, name string) (*Theme, error) {
	if err := service.requireAdmin(context, callerID); err != nil {
		return nil, err
	}

	theme := &Theme{Name: name, Slug: slug.From(name)}
	if err := service.repository.Create(context, theme); err != nil {
		return nil, err
	}

	return theme, nil
}

/*
Update renames a theme. Administrators only.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - id: int
  - name: string

Returns:
  - *Theme: The updated entity
  - error: apperr.Forbidden, ErrThemeNotFound, or database failures
*/
func (service *Service) Update(context context.Context, callerID string, id int, name string) (*Theme, error) {
	if err := service.requireAdmin(context, callerID); err != nil {
		return nil, err
	}

	theme := &Theme{ID: id, Name: name, Slug: slug.From(name)}
	if err := service.repository.Update(context, theme); err != nil {
		return nil, err
	}

	return theme, nil
}

/*
Delete removes a theme. Administrators only. Themes still referenced by
articles are refused with a conflict.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated user)
  - id: int

Returns:
  - error: apperr.Forbidden, ErrThemeNotFound, apperr.Conflict, or database
    failures
*/
func (service *Service) Delete(context context.Context, callerID string, id int) error {
	if err := service.requireAdmin(context, callerID); err != nil {
		return err
	}

	return service.repository.Delete(context, id)
}
