// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuhq/revu/internal/catalog/title"
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/database/schema"
	"github.com/revuhq/revu/internal/platform/dberr"
	"github.com/revuhq/revu/pkg/pagination"
)

// PostgresRepository implements Repository on top of content.review.
// It also serves the catalog as its [title.RatingSource].
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByTitle(ctx context.Context, titleID string, params pagination.Params) ([]Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ContentReview.Table, schema.ContentReview.TitleID)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.ContentReview.ID, schema.ContentReview.TitleID, schema.ContentReview.AuthorID,
		schema.UsersAccount.Username,
		schema.ContentReview.Text, schema.ContentReview.Score,
		schema.ContentReview.CreatedAt, schema.ContentReview.UpdatedAt,
		schema.ContentReview.Table,
		schema.UsersAccount.Table, schema.ContentReview.AuthorID, schema.UsersAccount.ID,
		schema.ContentReview.TitleID,
		schema.ContentReview.CreatedAt)

	rows, err := repository.db.Query(ctx, query, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, titleID, reviewID string) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1 AND r.%s = $2
	`,
		schema.ContentReview.ID, schema.ContentReview.TitleID, schema.ContentReview.AuthorID,
		schema.UsersAccount.Username,
		schema.ContentReview.Text, schema.ContentReview.Score,
		schema.ContentReview.CreatedAt, schema.ContentReview.UpdatedAt,
		schema.ContentReview.Table,
		schema.UsersAccount.Table, schema.ContentReview.AuthorID, schema.UsersAccount.ID,
		schema.ContentReview.ID, schema.ContentReview.TitleID)

	r, err := scanReview(repository.db.QueryRow(ctx, query, reviewID, titleID))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Review")
		}
		return nil, err
	}
	return r, nil
}

func (repository *PostgresRepository) ExistsForAuthor(ctx context.Context, titleID, authorID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.ContentReview.Table, schema.ContentReview.TitleID, schema.ContentReview.AuthorID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists_for_author")
	}
	return exists, nil
}

func (repository *PostgresRepository) TitleExists(ctx context.Context, titleID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.ContentReview.Table,
		schema.ContentReview.ID, schema.ContentReview.TitleID, schema.ContentReview.AuthorID,
		schema.ContentReview.Text, schema.ContentReview.Score,
		schema.ContentReview.CreatedAt, schema.ContentReview.UpdatedAt)

	_, err := repository.db.Exec(ctx, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
		review.CreatedAt, review.UpdatedAt)
	if err != nil {
		// Unique index on (authorid, titleid): the race-proof duplicate guard.
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("You have already reviewed this title")
		}
		return dberr.Wrap(err, "create_review")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		schema.ContentReview.Table,
		schema.ContentReview.Text, schema.ContentReview.Score, schema.ContentReview.UpdatedAt,
		schema.ContentReview.ID)

	tag, err := repository.db.Exec(ctx, query, review.ID, review.Text, review.Score, review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, titleID, reviewID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ContentReview.Table, schema.ContentReview.ID, schema.ContentReview.TitleID)

	tag, err := repository.db.Exec(ctx, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

// # Rating Aggregation

/*
ForTitles aggregates review scores per title.

Returns:
  - A map keyed by title ID; titles with no reviews are absent, which
    the catalog renders as a null rating.
*/
func (repository *PostgresRepository) ForTitles(ctx context.Context, titleIDs []string) (map[string]title.Rating, error) {
	query := fmt.Sprintf(`
		SELECT %s, AVG(%s)::float8, COUNT(*)
		FROM %s
		WHERE %s = ANY($1)
		GROUP BY %s
	`,
		schema.ContentReview.TitleID, schema.ContentReview.Score,
		schema.ContentReview.Table,
		schema.ContentReview.TitleID,
		schema.ContentReview.TitleID)

	rows, err := repository.db.Query(ctx, query, titleIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "aggregate_ratings")
	}
	defer rows.Close()

	ratings := make(map[string]title.Rating)
	for rows.Next() {
		var titleID string
		var r title.Rating
		if err := rows.Scan(&titleID, &r.Mean, &r.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_rating")
		}
		ratings[titleID] = r
	}

	return ratings, nil
}

func scanReview(row pgx.Row) (*Review, error) {
	r := &Review{}
	err := row.Scan(
		&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_review")
	}
	return r, nil
}
