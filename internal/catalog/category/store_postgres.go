// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/database/schema"
	"github.com/revuhq/revu/internal/platform/dberr"
	"github.com/revuhq/revu/pkg/pagination"
)

// PostgresRepository implements Repository on top of catalog.category.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context, search string, params pagination.Params) ([]Category, int, error) {
	pattern := "%" + search + "%"

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE ($1 = '%%%%' OR %s ILIKE $1)`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Name)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		WHERE ($1 = '%%%%' OR %s ILIKE $1)
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug, schema.CatalogCategory.CreatedAt,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.Name,
		schema.CatalogCategory.Name,
	)

	rows, err := repository.db.Query(ctx, query, pattern, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug, schema.CatalogCategory.CreatedAt,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	c := &Category{}
	err := repository.db.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_category_by_slug")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug, schema.CatalogCategory.CreatedAt)

	_, err := repository.db.Exec(ctx, query, category.ID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Category name or slug is already in use")
		}
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

func (repository *PostgresRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	tag, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
