// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

/*
Package identity implements the user, role, and claim management layer.

It is the authentication/authorization core of the platform: credential
verification, claim aggregation, signed-token issuance, and the
ownership-or-admin decision applied before every mutation of owned content.

# Architecture

  - Service: Orchestrates registration, login, password reset, and role
    administration.
  - ClaimAggregator: Builds the full claim set for an identity from the user
    and role stores.
  - Authorizer: Answers allow/deny for resource mutations using live role
    lookups, never the token's cached role claims.
  - Repositories: Abstracted interfaces for Postgres (users, roles) and
    Redis (volatile reset tokens).
*/
package identity

import (
	"time"

	"github.com/mgoullet/scrib/internal/platform/sec"
)

// # Role Names

const (
	// RoleAdmin grants unrestricted mutation rights over all owned resources
	// and exclusive access to theme management.
	RoleAdmin = "Admin"

	// RoleUser is the default role assigned at registration.
	RoleUser = "User"
)

// # Domain Entities

// User represents a registered member of the Scrib platform.
//
// The ID is immutable after creation. Email doubles as the login name.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Birthday     time.Time `json:"birthday"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is a named permission group. Claims attached to a role are granted to
// every identity holding it at token issuance time.
type Role struct {
	Name   string      `json:"name"`
	Claims []sec.Claim `json:"claims,omitempty"`
}

// BirthdayLayout is the wire format for the registration birthday field.
const BirthdayLayout = "2006-01-02"
