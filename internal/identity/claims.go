// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mgoullet/scrib/internal/platform/sec"
	"github.com/mgoullet/scrib/pkg/uuid"
)

// ClaimAggregator builds the full claim set for an identity from the current
// state of the user and role stores.
//
// # Ordering
//
// The result is order-preserving and never deduplicated: base claims first,
// then the user's directly-assigned claims, then per held role a role claim
// followed by that role's attached claims. A claim granted both directly and
// through a role therefore appears twice.
type ClaimAggregator struct {
	userRepository UserRepository
	roleRepository RoleRepository

	// now and newTokenID are swappable for tests.
	now        func() time.Time
	newTokenID func() string
}

// NewClaimAggregator constructs a [ClaimAggregator] over the given stores.
func NewClaimAggregator(userRepo UserRepository, roleRepo RoleRepository) *ClaimAggregator {
	return &ClaimAggregator{
		userRepository: userRepo,
		roleRepository: roleRepo,
		now:            time.Now,
		newTokenID:     uuid.New,
	}
}

/*
Aggregate builds the claim set embedded into the user's next access token.

Description: Read-only over the identity and role stores. Role assignments
whose role no longer exists in the role store are skipped silently: the
assignment is treated as stale rather than as an error, so tokens degrade
gracefully while an administrator cleans up.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - sec.ClaimSet: Base claims, user claims, then role claims, in order
  - error: Store retrieval failures
*/
func (aggregator *ClaimAggregator) Aggregate(context context.Context, user *User) (sec.ClaimSet, error) {

	// 1. Base claims: identity, subject, email, a fresh token id, and the
	// issuance timestamp (unix seconds).
	claims := sec.ClaimSet{
		{Type: sec.ClaimID, Value: user.ID},
		{Type: sec.ClaimSubject, Value: user.Email},
		{Type: sec.ClaimEmail, Value: user.Email},
		{Type: sec.ClaimTokenID, Value: aggregator.newTokenID()},
		{Type: sec.ClaimIssuedAt, Value: strconv.FormatInt(aggregator.now().Unix(), 10)},
	}

	// 2. Claims directly assigned to the user, copied verbatim.
	userClaims, err := aggregator.userRepository.ClaimsOf(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("identity_aggregate_user_claims_failed: %w", err)
	}
	claims = append(claims, userClaims...)

	// 3. Per held role: one role claim plus the role's attached claims.
	roleNames, err := aggregator.userRepository.RolesOf(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("identity_aggregate_roles_failed: %w", err)
	}

	for _, roleName := range roleNames {
		role, err := aggregator.roleRepository.FindByName(context, roleName)
		if err != nil {
			// Stale assignment: the role was removed from the store after
			// being assigned. Dropped from the token, not reported.
			if errors.Is(err, ErrRoleNotFound) {
				continue
			}
			return nil, fmt.Errorf("identity_aggregate_role_lookup_failed: %w", err)
		}

		claims = append(claims, sec.Claim{Type: sec.ClaimRole, Value: role.Name})
		claims = append(claims, role.Claims...)
	}

	return claims, nil
}
