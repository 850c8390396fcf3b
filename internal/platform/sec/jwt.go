// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([TokenIssuer], [TokenVerifier] in
// their consuming packages).
package sec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload embedded inside a signed access token.
//
// # Shape
//
// The base claims of a [ClaimSet] map onto registered JWT fields (sub, jti,
// iat) plus uid and email; role claims collect into the "roles" array in
// aggregation order; every custom claim lands in the "claims" array verbatim,
// order and duplicates preserved.
type TokenClaims struct {
	jwt.RegisteredClaims

	UserID string   `json:"uid"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
	Extra  []Claim  `json:"claims,omitempty"`
}

// TokenService signs and verifies access tokens using HMAC-SHA256 over a
// shared symmetric secret.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration

	// now is swappable for tests. Production always uses time.Now.
	now func() time.Time
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The symmetric signing key (JWT_SECRET).
//   - issuer: Stamped into the 'iss' claim of every token.
//   - timeToLive: The fixed validity window; expiry is always issuance time
//     plus exactly this duration.
func NewTokenService(secret, issuer string, timeToLive time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: token secret must not be empty")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
		now:        time.Now,
	}, nil
}

// Issue builds and signs a token whose payload is exactly the given claim set.
//
// # Mapping
//
// The issuance time is taken from the set's ClaimIssuedAt entry so that
// exp - iat equals the configured validity window to the second. A set
// without an issuance claim falls back to the current time.
func (service *TokenService) Issue(claims ClaimSet) (string, error) {
	tokenClaims := &TokenClaims{}

	issuedAt := service.now()
	if raw, ok := claims.First(ClaimIssuedAt); ok {
		if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
			issuedAt = time.Unix(seconds, 0)
		}
	}

	for _, claim := range claims {
		switch claim.Type {
		case ClaimID:
			tokenClaims.UserID = claim.Value
		case ClaimSubject:
			tokenClaims.Subject = claim.Value
		case ClaimEmail:
			tokenClaims.Email = claim.Value
		case ClaimTokenID:
			tokenClaims.ID = claim.Value
		case ClaimIssuedAt:
			// Consumed above.
		case ClaimRole:
			tokenClaims.Roles = append(tokenClaims.Roles, claim.Value)
		default:
			tokenClaims.Extra = append(tokenClaims.Extra, claim)
		}
	}

	tokenClaims.Issuer = service.issuer
	tokenClaims.IssuedAt = jwt.NewNumericDate(issuedAt)
	tokenClaims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(service.timeToLive))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token string.
//
// Issuer and audience are intentionally not validated: tokens are only ever
// consumed by this single-tenant API. The 'iss' claim is stamped at issuance
// so that validation can be enabled later without re-issuing tokens.
func (service *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return service.now() }),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("sec: token is missing the user id claim")
	}

	return claims, nil
}
