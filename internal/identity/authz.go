// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"fmt"
)

// CanMutate reports whether a caller may update or delete a resource owned by
// ownerID. Owners may mutate their own resources; administrators may mutate
// anything. Everyone else is refused.
func CanMutate(ownerID, callerID string, callerIsAdmin bool) bool {
	if callerIsAdmin {
		return true
	}
	return ownerID != "" && ownerID == callerID
}

// Authorizer answers role questions against the live user store. Token role
// claims are never consulted: a revoked admin loses admin access on their
// next request even while their token is still valid.
type Authorizer struct {
	userRepository UserRepository
}

// NewAuthorizer constructs an [Authorizer] over the given store.
func NewAuthorizer(userRepo UserRepository) *Authorizer {
	return &Authorizer{userRepository: userRepo}
}

/*
IsAdmin reports whether the user currently holds the administrator role.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - bool: True if the user holds [RoleAdmin] right now
  - error: Store retrieval failures
*/
func (authorizer *Authorizer) IsAdmin(context context.Context, userID string) (bool, error) {
	isAdmin, err := authorizer.userRepository.HasRole(context, userID, RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("identity_admin_check_failed: %w", err)
	}
	return isAdmin, nil
}
