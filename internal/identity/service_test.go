// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/internal/platform/sec"
)

// fixedToday anchors age computations: 2026-06-15.
var fixedToday = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(users *fakeUserRepository, roles *fakeRoleRepository) (*Service, *fakeIssuer) {
	issuer := &fakeIssuer{}
	resetRepo := newFakeResetTokenRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewService(users, roles, resetRepo, NewClaimAggregator(users, roles), issuer, logger)
	service.now = func() time.Time { return fixedToday }
	return service, issuer
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:       "alex@scrib.app",
		DisplayName: "Alex",
		Birthday:    "2000-01-01",
		Password:    "correct-horse",
	}
}

/*
TestRegister_Success verifies the happy path issues a token and assigns the
default role.
*/
func TestRegister_Success(t *testing.T) {
	users := newFakeUserRepository()
	roles := newFakeRoleRepository(&Role{Name: RoleUser})
	service, issuer := newTestService(users, roles)

	token, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)

	// The account exists, holds the default role, and the aggregated claim
	// set carries it.
	user, err := users.FindByEmail(context.Background(), "alex@scrib.app")
	require.NoError(t, err)
	assert.Equal(t, []string{RoleUser}, users.rolesByID[user.ID])
	assert.Contains(t, issuer.lastClaims, sec.Claim{Type: sec.ClaimRole, Value: RoleUser})
}

/*
TestRegister_DuplicateEmail verifies a second registration with the same
email is refused with a conflict.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepository()
	service, _ := newTestService(users, newFakeRoleRepository())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), validRegistration())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeDuplicateEmail, apperr.As(err).Code)
}

/*
TestRegister_AgeBoundary verifies calendar-correct age checks: exactly 18 on
the day of registration is accepted, one day short is refused.
*/
func TestRegister_AgeBoundary(t *testing.T) {
	cases := []struct {
		name     string
		birthday string
		accepted bool
	}{
		{"turns 18 today", "2008-06-15", true},
		{"18 tomorrow", "2008-06-16", false},
		{"17 years old", "2009-06-15", false},
		{"unparsable birthday", "15/06/2008", false},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			service, _ := newTestService(newFakeUserRepository(), newFakeRoleRepository())

			input := validRegistration()
			input.Birthday = testCase.birthday

			_, err := service.Register(context.Background(), input)
			if testCase.accepted {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperr.CodeUnderage, apperr.As(err).Code)
			}
		})
	}
}

/*
TestRegister_DefaultRoleBestEffort verifies a failing role assignment never
fails the registration itself.
*/
func TestRegister_DefaultRoleBestEffort(t *testing.T) {
	users := newFakeUserRepository()
	users.assignErr = errors.New("role store down")
	roles := newFakeRoleRepository(&Role{Name: RoleUser})
	service, _ := newTestService(users, roles)

	token, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, users.assignCalled)
}

/*
TestLogin_GenericFailure verifies unknown email and wrong password produce
the same generic credential error with no token.
*/
func TestLogin_GenericFailure(t *testing.T) {
	users := newFakeUserRepository()
	service, _ := newTestService(users, newFakeRoleRepository())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// 1. Unknown account.
	_, unknownErr := service.Login(context.Background(), "nobody@scrib.app", "whatever")
	require.Error(t, unknownErr)

	// 2. Known account, wrong password.
	_, wrongErr := service.Login(context.Background(), "alex@scrib.app", "wrong-password")
	require.Error(t, wrongErr)

	// Indistinguishable from the outside.
	assert.Equal(t, apperr.As(unknownErr).Code, apperr.As(wrongErr).Code)
	assert.Equal(t, apperr.As(unknownErr).Message, apperr.As(wrongErr).Message)
}

/*
TestLogin_Success verifies correct credentials return a signed token.
*/
func TestLogin_Success(t *testing.T) {
	users := newFakeUserRepository()
	service, issuer := newTestService(users, newFakeRoleRepository())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	token, err := service.Login(context.Background(), "alex@scrib.app", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Contains(t, issuer.lastClaims, sec.Claim{Type: sec.ClaimEmail, Value: "alex@scrib.app"})
}

/*
TestPasswordReset_RoundTrip verifies the issue-redeem cycle replaces the
password and burns the token.
*/
func TestPasswordReset_RoundTrip(t *testing.T) {
	users := newFakeUserRepository()
	service, _ := newTestService(users, newFakeRoleRepository())

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	rawToken, err := service.RequestPasswordReset(context.Background(), "alex@scrib.app")
	require.NoError(t, err)
	require.NotEmpty(t, rawToken)

	require.NoError(t, service.ResetPassword(context.Background(), rawToken, "new-password-123"))

	// Old password no longer works, the new one does.
	_, err = service.Login(context.Background(), "alex@scrib.app", "correct-horse")
	assert.Error(t, err)
	_, err = service.Login(context.Background(), "alex@scrib.app", "new-password-123")
	assert.NoError(t, err)

	// Single use.
	assert.Error(t, service.ResetPassword(context.Background(), rawToken, "another-password"))
}

/*
TestPasswordReset_UnknownEmail verifies the flow is enumeration-safe.
*/
func TestPasswordReset_UnknownEmail(t *testing.T) {
	service, _ := newTestService(newFakeUserRepository(), newFakeRoleRepository())

	rawToken, err := service.RequestPasswordReset(context.Background(), "nobody@scrib.app")
	assert.NoError(t, err)
	assert.Empty(t, rawToken)
}

/*
TestRoleAdministration verifies role creation conflicts and assignment flows.
*/
func TestRoleAdministration(t *testing.T) {
	users := newFakeUserRepository()
	roles := newFakeRoleRepository()
	service, _ := newTestService(users, roles)

	_, err := service.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// 1. Create once, conflict on the second attempt.
	require.NoError(t, service.CreateRole(context.Background(), RoleAdmin))
	err = service.CreateRole(context.Background(), RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConflict, apperr.As(err).Code)

	// 2. Assigning an undefined role is refused.
	err = service.AssignRole(context.Background(), "alex@scrib.app", "Ghost")
	assert.ErrorIs(t, err, ErrRoleNotFound)

	// 3. Assign, list, remove.
	require.NoError(t, service.AssignRole(context.Background(), "alex@scrib.app", RoleAdmin))
	names, err := service.RolesOfEmail(context.Background(), "alex@scrib.app")
	require.NoError(t, err)
	assert.Contains(t, names, RoleAdmin)

	require.NoError(t, service.RemoveRole(context.Background(), "alex@scrib.app", RoleAdmin))
	names, err = service.RolesOfEmail(context.Background(), "alex@scrib.app")
	require.NoError(t, err)
	assert.NotContains(t, names, RoleAdmin)

	// 4. Unknown accounts surface as not found.
	err = service.AssignRole(context.Background(), "nobody@scrib.app", RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
