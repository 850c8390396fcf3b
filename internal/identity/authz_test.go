// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestCanMutate verifies the owner-or-admin rule.
*/
func TestCanMutate(t *testing.T) {
	// 1. Owners may mutate their own resources.
	assert.True(t, CanMutate("user-1", "user-1", false))

	// 2. Admins may mutate anything, including nothing they own.
	assert.True(t, CanMutate("user-1", "user-2", true))

	// 3. Everyone else is refused.
	assert.False(t, CanMutate("user-1", "user-2", false))

	// 4. An empty owner never matches a non-admin caller.
	assert.False(t, CanMutate("", "", false))
}

/*
TestAuthorizer_IsAdmin verifies that admin checks read the live role store,
so a revocation takes effect immediately.
*/
func TestAuthorizer_IsAdmin(t *testing.T) {
	users := newFakeUserRepository()
	users.rolesByID["user-1"] = []string{RoleAdmin}
	authorizer := NewAuthorizer(users)

	isAdmin, err := authorizer.IsAdmin(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// Revoke and re-check: no caching in between.
	require.NoError(t, users.RemoveRole(context.Background(), "user-1", RoleAdmin))

	isAdmin, err = authorizer.IsAdmin(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
