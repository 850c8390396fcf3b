// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/internal/platform/constants"
	"github.com/mgoullet/scrib/internal/platform/sec"
	"github.com/mgoullet/scrib/pkg/uuid"
)

// TokenIssuer signs an aggregated claim set into a compact access token.
type TokenIssuer interface {
	Issue(claims sec.ClaimSet) (string, error)
}

// Service implements registration, login, password reset and role
// administration over the identity stores.
type Service struct {
	userRepository  UserRepository
	roleRepository  RoleRepository
	resetRepository ResetTokenRepository
	aggregator      *ClaimAggregator
	issuer          TokenIssuer
	logger          *slog.Logger

	// now is swappable for age boundary tests.
	now func() time.Time
}

// NewService constructs the identity [Service].
func NewService(
	userRepo UserRepository,
	roleRepo RoleRepository,
	resetRepo ResetTokenRepository,
	aggregator *ClaimAggregator,
	issuer TokenIssuer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:  userRepo,
		roleRepository:  roleRepo,
		resetRepository: resetRepo,
		aggregator:      aggregator,
		issuer:          issuer,
		logger:          logger,
		now:             time.Now,
	}
}

// ─── 1. Registration and login ──────────────────────────────────────────────

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Birthday    string `json:"birthday"`
	Password    string `json:"password"`
}

/*
Register creates a new account and signs the user in.

Description: The email must be unused and the applicant must be at least
eighteen years old on the day of registration, computed calendar-correctly
from the birthday. On success the default user role is assigned best-effort
(a missing role store entry is logged, not surfaced) and a fresh access
token is issued.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - string: Signed access token
  - error: apperr.DuplicateEmail, apperr.Underage, or store failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (string, error) {

	// 1. Reject duplicate emails up front.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return "", apperr.DuplicateEmail()
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("identity_register_lookup_failed: %w", err)
	}

	// 2. Enforce the age floor. An unparsable birthday is treated the same
	// as an underage one.
	birthday, err := time.Parse(BirthdayLayout, input.Birthday)
	if err != nil {
		return "", apperr.Underage()
	}
	if ageOn(birthday, service.now()) < constants.MinimumAge {
		return "", apperr.Underage()
	}

	// 3. Hash the password and persist the account.
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("identity_register_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		Birthday:     birthday,
		PasswordHash: passwordHash,
	}
	if err := service.userRepository.Create(context, user); err != nil {
		return "", fmt.Errorf("identity_register_create_failed: %w", err)
	}

	// 4. Best-effort default role. Registration already succeeded, so a
	// missing or failing role store never fails the request.
	if exists, err := service.roleRepository.Exists(context, RoleUser); err == nil && exists {
		if err := service.userRepository.AssignRole(context, user.ID, RoleUser); err != nil {
			service.logger.Warn("default role assignment failed",
				slog.String("user_id", user.ID), slog.Any("error", err))
		}
	}

	return service.signIn(context, user)
}

/*
Login validates credentials and issues an access token.

Description: Unknown email and wrong password both map to the same generic
invalid-credentials error so that responses never reveal whether an account
exists.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - string: Signed access token
  - error: apperr.InvalidCredentials or store failures
*/
func (service *Service) Login(context context.Context, email, password string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.InvalidCredentials()
		}
		return "", fmt.Errorf("identity_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return "", apperr.InvalidCredentials()
	}

	return service.signIn(context, user)
}

// signIn aggregates the user's current claims and signs them into a token.
func (service *Service) signIn(context context.Context, user *User) (string, error) {
	claims, err := service.aggregator.Aggregate(context, user)
	if err != nil {
		return "", err
	}

	token, err := service.issuer.Issue(claims)
	if err != nil {
		return "", fmt.Errorf("identity_token_issue_failed: %w", err)
	}
	return token, nil
}

// ageOn returns full years completed between birthday and the reference day.
func ageOn(birthday, reference time.Time) int {
	age := reference.Year() - birthday.Year()
	anniversary := birthday.AddDate(age, 0, 0)
	if anniversary.After(reference) {
		age--
	}
	return age
}

// ─── 2. Password reset ──────────────────────────────────────────────────────

/*
RequestPasswordReset starts a password reset flow for the given email.

Description: Enumeration-safe. An unknown email returns success without
side effects; a known one gets a single-use token stored hashed with a
short expiry. The raw token is returned to the caller for delivery.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Raw reset token, empty for unknown accounts
  - error: Store failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("identity_reset_lookup_failed: %w", err)
	}

	token, err := sec.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("identity_reset_token_failed: %w", err)
	}

	if err := service.resetRepository.Set(context, sec.HashToken(token), user.ID, constants.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("identity_reset_store_failed: %w", err)
	}
	return token, nil
}

/*
ResetPassword redeems a reset token and replaces the account password.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: apperr.Unauthorized for unknown or expired tokens, store failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	tokenHash := sec.HashToken(token)

	userID, err := service.resetRepository.Get(context, tokenHash)
	if err != nil {
		if apperr.IsAppError(err) {
			return apperr.Unauthorized("reset token is invalid or expired")
		}
		return fmt.Errorf("identity_reset_redeem_failed: %w", err)
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("identity_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, passwordHash); err != nil {
		return fmt.Errorf("identity_reset_update_failed: %w", err)
	}

	// Single use: drop the token regardless of later failures.
	if err := service.resetRepository.Delete(context, tokenHash); err != nil {
		service.logger.Warn("reset token cleanup failed", slog.Any("error", err))
	}
	return nil
}

// ─── 3. Role administration ─────────────────────────────────────────────────

/*
CreateRole registers a new role definition.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - error: apperr.Conflict when the name is taken, store failures
*/
func (service *Service) CreateRole(context context.Context, name string) error {
	exists, err := service.roleRepository.Exists(context, name)
	if err != nil {
		return fmt.Errorf("identity_role_check_failed: %w", err)
	}
	if exists {
		return apperr.Conflict("role already exists")
	}

	if err := service.roleRepository.Create(context, name); err != nil {
		return fmt.Errorf("identity_role_create_failed: %w", err)
	}
	return nil
}

// ListRoles returns every registered role.
func (service *Service) ListRoles(context context.Context) ([]*Role, error) {
	roles, err := service.roleRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("identity_role_list_failed: %w", err)
	}
	return roles, nil
}

// ListUsers returns every registered account.
func (service *Service) ListUsers(context context.Context) ([]*User, error) {
	users, err := service.userRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("identity_user_list_failed: %w", err)
	}
	return users, nil
}

/*
RolesOfEmail lists the role names held by the account with the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - []string: Role names
  - error: ErrUserNotFound or store failures
*/
func (service *Service) RolesOfEmail(context context.Context, email string) ([]string, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return nil, err
	}

	roles, err := service.userRepository.RolesOf(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("identity_user_roles_failed: %w", err)
	}
	return roles, nil
}

/*
AssignRole grants a role to the account with the given email.

Parameters:
  - context: context.Context
  - email: string
  - roleName: string

Returns:
  - error: ErrUserNotFound, ErrRoleNotFound, or store failures
*/
func (service *Service) AssignRole(context context.Context, email, roleName string) error {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return err
	}

	exists, err := service.roleRepository.Exists(context, roleName)
	if err != nil {
		return fmt.Errorf("identity_role_check_failed: %w", err)
	}
	if !exists {
		return ErrRoleNotFound
	}

	if err := service.userRepository.AssignRole(context, user.ID, roleName); err != nil {
		return fmt.Errorf("identity_role_assign_failed: %w", err)
	}
	return nil
}

/*
RemoveRole revokes a role from the account with the given email.

Parameters:
  - context: context.Context
  - email: string
  - roleName: string

Returns:
  - error: ErrUserNotFound or store failures
*/
func (service *Service) RemoveRole(context context.Context, email, roleName string) error {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return err
	}

	if err := service.userRepository.RemoveRole(context, user.ID, roleName); err != nil {
		return fmt.Errorf("identity_role_remove_failed: %w", err)
	}
	return nil
}
