// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

// Package postgres implements the storage layer for identity using PostgreSQL.
//
// # Architecture
//
// Repositories in this package are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to the package's
// sentinel errors to avoid leaking storage implementation details.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgoullet/scrib/internal/platform/sec"
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByID retrieves an account by its primary key.
//
// # Returns
//
// Returns [*User] if found, or [ErrUserNotFound] if no account exists.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, displayname, birthday, passwordhash, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	return repository.scanUser(repository.pool.QueryRow(ctx, query, id))
}

// FindByEmail retrieves an account by its unique email address.
//
// # Returns
//
// Returns [*User] if found, or [ErrUserNotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, displayname, birthday, passwordhash, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	return repository.scanUser(repository.pool.QueryRow(ctx, query, email))
}

// Create persists a new account into the users.account table.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, email, displayname, birthday, passwordhash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.Birthday,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// List retrieves every registered account, newest last.
func (repository *PostgresUserRepository) List(ctx context.Context) ([]*User, error) {
	const query = `
		SELECT id, email, displayname, birthday, passwordhash, createdat, updatedat
		FROM users.account
		ORDER BY createdat`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.DisplayName,
			&user.Birthday,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdatePassword replaces only the password hash of the given account.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ClaimsOf retrieves the user's directly-assigned claims in assignment order.
func (repository *PostgresUserRepository) ClaimsOf(ctx context.Context, userID string) ([]sec.Claim, error) {
	const query = `
		SELECT claimtype, claimvalue
		FROM users.user_claim
		WHERE userid = $1
		ORDER BY id`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_claims_failed: %w", err)
	}
	defer rows.Close()

	var claims []sec.Claim
	for rows.Next() {
		var claim sec.Claim
		if err := rows.Scan(&claim.Type, &claim.Value); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_claims_scan_failed: %w", err)
		}
		claims = append(claims, claim)
	}

	return claims, rows.Err()
}

// RolesOf retrieves the names of the roles assigned to the user, in
// assignment order. Names may reference roles that no longer exist.
func (repository *PostgresUserRepository) RolesOf(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT rolename
		FROM users.user_role
		WHERE userid = $1
		ORDER BY id`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_roles_failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_roles_scan_failed: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// HasRole reports whether the user currently holds the named role. This hits
// the database on every call: authorization never trusts token role claims.
func (repository *PostgresUserRepository) HasRole(ctx context.Context, userID, roleName string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users.user_role
			WHERE userid = $1 AND rolename = $2
		)`

	var held bool
	if err := repository.pool.QueryRow(ctx, query, userID, roleName).Scan(&held); err != nil {
		return false, fmt.Errorf("postgres_user_repo_has_role_failed: %w", err)
	}

	return held, nil
}

// AssignRole records the role assignment. Re-assigning a held role is a no-op.
func (repository *PostgresUserRepository) AssignRole(ctx context.Context, userID, roleName string) error {
	const query = `
		INSERT INTO users.user_role (userid, rolename)
		VALUES ($1, $2)
		ON CONFLICT (userid, rolename) DO NOTHING`

	if _, err := repository.pool.Exec(ctx, query, userID, roleName); err != nil {
		return fmt.Errorf("postgres_user_repo_assign_role_failed: %w", err)
	}

	return nil
}

// RemoveRole deletes the role assignment. Removing an unheld role is a no-op.
func (repository *PostgresUserRepository) RemoveRole(ctx context.Context, userID, roleName string) error {
	const query = `
		DELETE FROM users.user_role
		WHERE userid = $1 AND rolename = $2`

	if _, err := repository.pool.Exec(ctx, query, userID, roleName); err != nil {
		return fmt.Errorf("postgres_user_repo_remove_role_failed: %w", err)
	}

	return nil
}

// scanUser hydrates a single account row, mapping pgx.ErrNoRows to the
// domain sentinel.
func (repository *PostgresUserRepository) scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.Birthday,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_scan_failed: %w", err)
	}

	return user, nil
}

// PostgresRoleRepository implements the RoleRepository interface using pgx.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new PostgreSQL implementation of the RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

// FindByName retrieves a role definition with its attached claims.
//
// # Returns
//
// Returns [*Role] if found, or [ErrRoleNotFound] if no role exists.
func (repository *PostgresRoleRepository) FindByName(ctx context.Context, name string) (*Role, error) {
	const roleQuery = `SELECT name FROM users.role WHERE name = $1`

	role := &Role{}
	if err := repository.pool.QueryRow(ctx, roleQuery, name).Scan(&role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("postgres_role_repo_find_failed: %w", err)
	}

	const claimQuery = `
		SELECT claimtype, claimvalue
		FROM users.role_claim
		WHERE rolename = $1
		ORDER BY id`

	rows, err := repository.pool.Query(ctx, claimQuery, name)
	if err != nil {
		return nil, fmt.Errorf("postgres_role_repo_claims_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var claim sec.Claim
		if err := rows.Scan(&claim.Type, &claim.Value); err != nil {
			return nil, fmt.Errorf("postgres_role_repo_claims_scan_failed: %w", err)
		}
		role.Claims = append(role.Claims, claim)
	}

	return role, rows.Err()
}

// Exists reports whether a role with the given name is defined.
func (repository *PostgresRoleRepository) Exists(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.role WHERE name = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_role_repo_exists_failed: %w", err)
	}

	return exists, nil
}

// Create persists a new role definition with no attached claims.
func (repository *PostgresRoleRepository) Create(ctx context.Context, name string) error {
	const query = `INSERT INTO users.role (name) VALUES ($1)`

	if _, err := repository.pool.Exec(ctx, query, name); err != nil {
		return fmt.Errorf("postgres_role_repo_create_failed: %w", err)
	}

	return nil
}

// List retrieves every defined role with its attached claims.
func (repository *PostgresRoleRepository) List(ctx context.Context) ([]*Role, error) {
	const query = `SELECT name FROM users.role ORDER BY name`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_role_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres_role_repo_list_scan_failed: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles := make([]*Role, 0, len(names))
	for _, name := range names {
		role, err := repository.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, nil
}
