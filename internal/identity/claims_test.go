// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgoullet/scrib/internal/platform/sec"
)

func newTestAggregator(users *fakeUserRepository, roles *fakeRoleRepository) *ClaimAggregator {
	aggregator := NewClaimAggregator(users, roles)
	aggregator.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	aggregator.newTokenID = func() string { return "fixed-token-id" }
	return aggregator
}

/*
TestAggregate_BaseClaims verifies the shape and order of the base claims.
*/
func TestAggregate_BaseClaims(t *testing.T) {
	users := newFakeUserRepository()
	aggregator := newTestAggregator(users, newFakeRoleRepository())

	user := &User{ID: "user-1", Email: "alex@scrib.app"}
	claims, err := aggregator.Aggregate(context.Background(), user)
	require.NoError(t, err)

	expected := sec.ClaimSet{
		{Type: sec.ClaimID, Value: "user-1"},
		{Type: sec.ClaimSubject, Value: "alex@scrib.app"},
		{Type: sec.ClaimEmail, Value: "alex@scrib.app"},
		{Type: sec.ClaimTokenID, Value: "fixed-token-id"},
		{Type: sec.ClaimIssuedAt, Value: strconv.FormatInt(1_700_000_000, 10)},
	}
	assert.Equal(t, expected, claims)
}

/*
TestAggregate_RoleClaims verifies that each held role contributes exactly one
role claim plus the role's attached claims, in assignment order.
*/
func TestAggregate_RoleClaims(t *testing.T) {
	users := newFakeUserRepository()
	users.rolesByID["user-1"] = []string{"Editor", "User"}

	roles := newFakeRoleRepository(
		&Role{Name: "Editor", Claims: []sec.Claim{{Type: "can_publish", Value: "true"}}},
		&Role{Name: "User"},
	)
	aggregator := newTestAggregator(users, roles)

	claims, err := aggregator.Aggregate(context.Background(), &User{ID: "user-1", Email: "a@b.c"})
	require.NoError(t, err)

	// Base claims first, then Editor + its claim, then User.
	assert.Equal(t, []string{"Editor", "User"}, claims.Roles())
	tail := claims[5:]
	expected := sec.ClaimSet{
		{Type: sec.ClaimRole, Value: "Editor"},
		{Type: "can_publish", Value: "true"},
		{Type: sec.ClaimRole, Value: "User"},
	}
	assert.Equal(t, expected, tail)
}

/*
TestAggregate_StaleRoleSkipped verifies that an assignment referencing a role
missing from the role store is dropped silently, not surfaced as an error.
*/
func TestAggregate_StaleRoleSkipped(t *testing.T) {
	users := newFakeUserRepository()
	users.rolesByID["user-1"] = []string{"Ghost", "User"}

	roles := newFakeRoleRepository(&Role{Name: "User"})
	aggregator := newTestAggregator(users, roles)

	claims, err := aggregator.Aggregate(context.Background(), &User{ID: "user-1", Email: "a@b.c"})
	require.NoError(t, err)

	// Only the surviving role shows up.
	assert.Equal(t, sec.ClaimSet{{Type: sec.ClaimRole, Value: "User"}}, claims[5:])
}

/*
TestAggregate_DuplicatesPreserved verifies that a claim granted both directly
and through a role appears twice and keeps its ordering.
*/
func TestAggregate_DuplicatesPreserved(t *testing.T) {
	users := newFakeUserRepository()
	users.claimsByID["user-1"] = []sec.Claim{{Type: "can_publish", Value: "true"}}
	users.rolesByID["user-1"] = []string{"Editor"}

	roles := newFakeRoleRepository(
		&Role{Name: "Editor", Claims: []sec.Claim{{Type: "can_publish", Value: "true"}}},
	)
	aggregator := newTestAggregator(users, roles)

	claims, err := aggregator.Aggregate(context.Background(), &User{ID: "user-1", Email: "a@b.c"})
	require.NoError(t, err)

	expected := sec.ClaimSet{
		{Type: "can_publish", Value: "true"},
		{Type: sec.ClaimRole, Value: "Editor"},
		{Type: "can_publish", Value: "true"},
	}
	assert.Equal(t, expected, claims[5:])
}
