// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgoullet/scrib/internal/identity"
	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const articleColumns = `id, title, slug, body, priority, themeid, ownerid, createdat, updatedat`

// FindByID retrieves an article by its primary key, without comments.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM wiki.article WHERE id = $1`, articleColumns)

	article := &Article{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Body,
		&article.Priority,
		&article.ThemeID,
		&article.OwnerID,
		&article.CreatedAt,
		&article.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("postgres_article_repo_find_failed: %w", err)
	}

	return article, nil
}

// Exists reports whether an article with the given ID is stored. Used by the
// comment domain before attaching a comment.
func (repository *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wiki.article WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres_article_repo_exists_failed: %w", err)
	}
	return exists, nil
}

// List retrieves one page of articles, newest first.
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Article, int, error) {
	// Count and page run as separate statements; total may lag the page
	// under concurrent writes.
	var total int
	if err := repository.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wiki.article`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM wiki.article
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`, articleColumns)

	rows, err := repository.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article := &Article{}
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Body,
			&article.Priority,
			&article.ThemeID,
			&article.OwnerID,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_article_repo_list_scan_failed: %w", err)
		}
		articles = append(articles, article)
	}

	return articles, total, rows.Err()
}

// Create persists a new article.
func (repository *PostgresRepository) Create(ctx context.Context, article *Article) error {
	const query = `
		INSERT INTO wiki.article (
			id, title, slug, body, priority, themeid, ownerid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Body,
		article.Priority,
		article.ThemeID,
		article.OwnerID,
		article.CreatedAt,
		article.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_article_repo_create_failed: %w", err)
	}

	return nil
}

// Update replaces the article's mutable fields under the owner-or-admin rule.
//
// The owner row is locked before the authorization decision so a concurrent
// mutation cannot invalidate it between check and write.
func (repository *PostgresRepository) Update(ctx context.Context, article *Article, callerID string, callerIsAdmin bool) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := lockAndAuthorize(ctx, transaction, article.ID, callerID, callerIsAdmin); err != nil {
		return err
	}

	const query = `
		UPDATE wiki.article
		SET title = $2, slug = $3, body = $4, priority = $5, themeid = $6, updatedat = $7
		WHERE id = $1`

	article.UpdatedAt = time.Now()
	if _, err := transaction.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Body,
		article.Priority,
		article.ThemeID,
		article.UpdatedAt,
	); err != nil {
		return fmt.Errorf("postgres_article_repo_update_failed: %w", err)
	}

	return transaction.Commit(ctx)
}

// Delete removes the article under the owner-or-admin rule. Comments go with
// it by foreign key cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string, callerID string, callerIsAdmin bool) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := lockAndAuthorize(ctx, transaction, id, callerID, callerIsAdmin); err != nil {
		return err
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM wiki.article WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres_article_repo_delete_failed: %w", err)
	}

	return transaction.Commit(ctx)
}

// lockAndAuthorize locks the article row and applies the owner-or-admin
// rule against the locked owner. Missing rows and refused callers stay
// distinguishable: the former is a not-found, the latter a forbidden.
func lockAndAuthorize(ctx context.Context, transaction pgx.Tx, articleID, callerID string, callerIsAdmin bool) error {
	var ownerID string
	err := transaction.QueryRow(ctx,
		`SELECT ownerid FROM wiki.article WHERE id = $1 FOR UPDATE`, articleID,
	).Scan(&ownerID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("postgres_article_repo_lock_failed: %w", err)
	}

	if !identity.CanMutate(ownerID, callerID, callerIsAdmin) {
		return apperr.Forbidden("You are not allowed to modify this article")
	}

	return nil
}
