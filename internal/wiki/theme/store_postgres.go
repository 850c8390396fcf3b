// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgoullet/scrib/internal/platform/apperr"
)

// foreignKeyViolation is the PostgreSQL error code raised when deleting a
// theme that articles still reference.
const foreignKeyViolation = "23503"

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindByID retrieves a theme by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Theme, error) {
	const query = `SELECT id, name, slug FROM wiki.theme WHERE id = $1`

	theme := &Theme{}
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&theme.ID, &theme.Name, &theme.Slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrThemeNotFound
		}
		return nil, fmt.Errorf("postgres_theme_repo_find_failed: %w", err)
	}

	return theme, nil
}

// List retrieves every theme, ordered by name.
func (repository *PostgresRepository) List(ctx context.Context) ([]*Theme, error) {
	const query = `SELECT id, name, slug FROM wiki.theme ORDER BY name`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_theme_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var themes []*Theme
	for rows.Next() {
		theme := &Theme{}
		if err := rows.Scan(&theme.ID, &theme.Name, &theme.Slug); err != nil {
			return nil, fmt.Errorf("postgres_theme_repo_list_scan_failed: %w", err)
		}
		themes = append(themes, theme)
	}

	return themes, rows.Err()
}

// Create persists a new theme and fills in its generated ID.
func (repository *PostgresRepository) Create(ctx context.Context, theme *Theme) error {
	const query = `
		INSERT INTO wiki.theme (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	if err := repository.pool.QueryRow(ctx, query, theme.Name, theme.Slug).Scan(&theme.ID); err != nil {
		return fmt.Errorf("postgres_theme_repo_create_failed: %w", err)
	}

	return nil
}

// Update replaces the theme's name and slug.
func (repository *PostgresRepository) Update(ctx context.Context, theme *Theme) error {
	const query = `UPDATE wiki.theme SET name = $2, slug = $3 WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, theme.ID, theme.Name, theme.Slug)
	if err != nil {
		return fmt.Errorf("postgres_theme_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrThemeNotFound
	}

	return nil
}

// Delete removes the theme. A foreign key violation from articles still
// filed under it is mapped to a conflict.
func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := repository.pool.Exec(ctx, `DELETE FROM wiki.theme WHERE id = $1`, id)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == foreignKeyViolation {
			return apperr.Conflict("Theme is still used by articles")
		}
		return fmt.Errorf("postgres_theme_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrThemeNotFound
	}

	return nil
}
