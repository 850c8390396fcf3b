// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package theme

import (
	"context"

	"github.com/mgoullet/scrib/internal/platform/apperr"
)

// ErrThemeNotFound is returned when no theme matches the lookup key.
var ErrThemeNotFound = apperr.NotFound("Theme")

// Repository defines the data access contract for themes.
type Repository interface {

	/*
		FindByID returns the theme with the given ID.

		Returns:
		  - *Theme: Hydrated entity
		  - error: ErrThemeNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int) (*Theme, error)

	/*
		List returns every theme, ordered by name.
	*/
	List(context context.Context) ([]*Theme, error)

	/*
		Create persists a new theme and fills in its generated ID.
	*/
	Create(context context.Context, theme *Theme) error

	/*
		Update replaces the theme's name and slug.

		Returns:
		  - error: ErrThemeNotFound or database failures
	*/
	Update(context context.Context, theme *Theme) error

	/*
		Delete removes the theme. Themes still referenced by articles are
		protected by the schema and surface as a conflict.

		Returns:
		  - error: ErrThemeNotFound, apperr.Conflict, or database failures
	*/
	Delete(context context.Context, id int) error
}

// AdminChecker answers live administrator checks.
type AdminChecker interface {
	IsAdmin(context context.Context, userID string) (bool, error)
}
