// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package comment

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

const commentColumns = `id, articleid, body, ownerid, createdat, updatedat`

// FindByID retrieves a comment by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM wiki.comment WHERE id = $1`, commentColumns)

	comment := &Comment{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.ArticleID,
		&comment.Body,
		&comment.OwnerID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

// List retrieves one page of comments across all articles, newest first.
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Comment, int, error) {
	// Count and page run as separate statements; total may lag the page
	// under concurrent writes.
	var total int
	if err := repository.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wiki.comment`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM wiki.comment
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`, commentColumns)

	rows, err := repository.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.ArticleID,
			&comment.Body,
			&comment.OwnerID,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

// ListForArticle retrieves every comment on the article, oldest first.
func (repository *PostgresRepository) ListForArticle(ctx context.Context, articleID string) ([]*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wiki.comment
		WHERE articleid = $1
		ORDER BY createdat`, commentColumns)

	rows, err := repository.pool.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.ArticleID,
			&comment.Body,
			&comment.OwnerID,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// Create persists a new comment.
func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO wiki.comment (id, articleid, body, ownerid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		comment.ID,
		comment.ArticleID,
		comment.Body,
		comment.OwnerID,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

// Update replaces the comment body under the owner-or-admin rule.
func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment, callerID string, callerIsAdmin bool) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := lockAndAuthorize(ctx, transaction, comment.ID, callerID, callerIsAdmin); err != nil {
		return err
	}

	const query = `
		UPDATE wiki.comment
		SET body = $2, updatedat = $3
		WHERE id = $1`

	comment.UpdatedAt = time.Now()
	if _, err := transaction.Exec(ctx, query, comment.ID, comment.Body, comment.UpdatedAt); err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	return transaction.Commit(ctx)
}

// Delete removes the comment under the owner-or-admin rule.
func (repository *PostgresRepository) Delete(ctx context.Context, id string, callerID string, callerIsAdmin bool) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := lockAndAuthorize(ctx, transaction, id, callerID, callerIsAdmin); err != nil {
		return err
	}

	if _, err := transaction.Exec(ctx, `DELETE FROM wiki.comment WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	return transaction.Commit(ctx)
}

// lockAndAuthorize locks the comment row and applies the owner-or-admin rule.
func lockAndAuthorize(ctx context.Context, transaction pgx.Tx, commentID, callerID string, callerIsAdmin bool) error {
	var ownerID string
	err := transaction.QueryRow(ctx,
		`SELECT ownerid FROM wiki.comment WHERE id = $1 FOR UPDATE`, commentID,
	).Scan(&ownerID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("postgres_comment_repo_lock_failed: %w", err)
	}

	if !identity.CanMutate(ownerID, callerID, callerIsAdmin) {
		return apperr.Forbidden("You are not allowed to modify this comment")
	}

	return nil
}
