// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/database/schema"
	"github.com/revuhq/revu/internal/platform/dberr"
	"github.com/revuhq/revu/pkg/pagination"
)

// PostgresRepository implements Repository on top of content.comment.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByReview(ctx context.Context, reviewID string, params pagination.Params) ([]Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ContentComment.Table, schema.ContentComment.ReviewID)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON c.%s = u.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.ContentComment.ID, schema.ContentComment.ReviewID, schema.ContentComment.AuthorID,
		schema.UsersAccount.Username,
		schema.ContentComment.Text, schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt,
		schema.ContentComment.Table,
		schema.UsersAccount.Table, schema.ContentComment.AuthorID, schema.UsersAccount.ID,
		schema.ContentComment.ReviewID,
		schema.ContentComment.CreatedAt)

	rows, err := repository.db.Query(ctx, query, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, *c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, reviewID, commentID string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON c.%s = u.%s
		WHERE c.%s = $1 AND c.%s = $2
	`,
		schema.ContentComment.ID, schema.ContentComment.ReviewID, schema.ContentComment.AuthorID,
		schema.UsersAccount.Username,
		schema.ContentComment.Text, schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt,
		schema.ContentComment.Table,
		schema.UsersAccount.Table, schema.ContentComment.AuthorID, schema.UsersAccount.ID,
		schema.ContentComment.ID, schema.ContentComment.ReviewID)

	c, err := scanComment(repository.db.QueryRow(ctx, query, commentID, reviewID))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ReviewExists(ctx context.Context, titleID, reviewID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.ContentReview.Table, schema.ContentReview.ID, schema.ContentReview.TitleID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ContentComment.Table,
		schema.ContentComment.ID, schema.ContentComment.ReviewID, schema.ContentComment.AuthorID,
		schema.ContentComment.Text, schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt)

	_, err := repository.db.Exec(ctx, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
		comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.ContentComment.Table,
		schema.ContentComment.Text, schema.ContentComment.UpdatedAt,
		schema.ContentComment.ID)

	tag, err := repository.db.Exec(ctx, query, comment.ID, comment.Text, comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, reviewID, commentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ContentComment.Table, schema.ContentComment.ID, schema.ContentComment.ReviewID)

	tag, err := repository.db.Exec(ctx, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	err := row.Scan(
		&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_comment")
	}
	return c, nil
}
