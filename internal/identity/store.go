// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"time"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/internal/platform/sec"
)

// Sentinel errors shared by every repository implementation. Returning the
// exact variables keeps errors.Is comparisons working across layers.
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrRoleNotFound is returned when no role matches the given name.
	ErrRoleNotFound = apperr.NotFound("Role")
)

// # User Data Access

// UserRepository defines the data access contract for user accounts and
// their role/claim assignments.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email (login name).

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.
	*/
	Create(context context.Context, user *User) error

	/*
		List returns every registered account.
	*/
	List(context context.Context) ([]*User, error)

	/*
		UpdatePassword replaces only the user's password hash.
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		ClaimsOf returns the claims directly assigned to the user, in
		assignment order.
	*/
	ClaimsOf(context context.Context, userID string) ([]sec.Claim, error)

	/*
		RolesOf returns the names of every role assigned to the user, in
		assignment order. Assignments may reference roles that no longer
		exist in the role store; callers decide how to treat those.
	*/
	RolesOf(context context.Context, userID string) ([]string, error)

	/*
		HasRole reports whether the user currently holds the named role.
		This is the live lookup used by authorization decisions.
	*/
	HasRole(context context.Context, userID, roleName string) (bool, error)

	/*
		AssignRole records that the user holds the named role. Assigning an
		already-held role is a no-op.
	*/
	AssignRole(context context.Context, userID, roleName string) error

	/*
		RemoveRole deletes the user's assignment of the named role.
	*/
	RemoveRole(context context.Context, userID, roleName string) error
}

// # Role Data Access

// RoleRepository defines the data access contract for role definitions and
// their attached claims.
type RoleRepository interface {

	/*
		FindByName returns the role definition with its attached claims.

		Returns:
		  - *Role: Hydrated entity
		  - error: ErrRoleNotFound or database retrieval failures
	*/
	FindByName(context context.Context, name string) (*Role, error)

	/*
		Exists reports whether a role with the given name is defined.
	*/
	Exists(context context.Context, name string) (bool, error)

	/*
		Create persists a new role definition with no attached claims.
	*/
	Create(context context.Context, name string) error

	/*
		List returns every defined role.
	*/
	List(context context.Context) ([]*Role, error)
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile
// password-reset tokens.
type ResetTokenRepository interface {

	/*
		Set stores a reset token hash associated with a userID for a limited
		duration.
	*/
	Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token hash.
	*/
	Get(context context.Context, tokenHash string) (string, error)

	/*
		Delete removes a reset token after successful use.
	*/
	Delete(context context.Context, tokenHash string) error
}
