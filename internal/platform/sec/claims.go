// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package sec

// # Claim Model

// Claim is a single typed fact about an identity, embedded into tokens or
// attached to users and roles.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Canonical claim types used by the authentication subsystem.
//
// Every issued token carries exactly one of each base claim (ClaimID,
// ClaimSubject, ClaimEmail, ClaimTokenID, ClaimIssuedAt) plus zero or more
// ClaimRole entries. Any other type is an identity- or role-attached custom
// claim and is copied into the token verbatim.
const (
	// ClaimID carries the identity's unique user ID. Caller identity is
	// always recovered from this claim by type, never by position.
	ClaimID = "uid"

	// ClaimSubject carries the identity's email, doubling as the login name.
	ClaimSubject = "sub"

	// ClaimEmail carries the identity's email.
	ClaimEmail = "email"

	// ClaimTokenID carries a fresh unique value per issuance.
	ClaimTokenID = "jti"

	// ClaimIssuedAt carries the issuance timestamp as unix seconds.
	ClaimIssuedAt = "iat"

	// ClaimRole carries one currently-held role name. A token holds one
	// ClaimRole entry per role.
	ClaimRole = "role"
)

// ClaimSet is an order-preserving list of claims. Duplicates are permitted:
// aggregation never deduplicates, so a claim granted both directly and via a
// role appears twice.
type ClaimSet []Claim

// First returns the value of the first claim with the given type, and whether
// one was found.
func (cs ClaimSet) First(claimType string) (string, bool) {
	for _, c := range cs {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}

// Roles returns the values of all ClaimRole entries in order.
func (cs ClaimSet) Roles() []string {
	var roles []string
	for _, c := range cs {
		if c.Type == ClaimRole {
			roles = append(roles, c.Value)
		}
	}
	return roles
}
