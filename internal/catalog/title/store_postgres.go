// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuhq/revu/internal/catalog/category"
	"github.com/revuhq/revu/internal/catalog/genre"
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/database/schema"
	"github.com/revuhq/revu/internal/platform/dberr"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/slice"
)

// PostgresRepository implements Repository on top of catalog.title and
// its genre join table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, params pagination.Params) ([]Title, int, error) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE $%d", schema.CatalogTitle.Name, len(args)))
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", schema.CatalogCategory.Slug, len(args)))
	}
	if len(filter.GenreSlugs) > 0 {
		args = append(args, filter.GenreSlugs)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s tg JOIN %s g ON tg.%s = g.%s WHERE tg.%s = t.%s AND g.%s = ANY($%d))`,
			schema.CatalogTitleGenre.Table, schema.CatalogGenre.Table,
			schema.CatalogTitleGenre.GenreID, schema.CatalogGenre.ID,
			schema.CatalogTitleGenre.TitleID, schema.CatalogTitle.ID,
			schema.CatalogGenre.Slug, len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.CatalogTitle.Year, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	fromClause := fmt.Sprintf(`FROM %s t LEFT JOIN %s c ON t.%s = c.%s %s`,
		schema.CatalogTitle.Table, schema.CatalogCategory.Table,
		schema.CatalogTitle.CategoryID, schema.CatalogCategory.ID, where)

	var total int
	countQuery := "SELECT COUNT(*) " + fromClause
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, c.%s, c.%s
		%s
		ORDER BY t.%s ASC, t.%s ASC
		LIMIT $%d OFFSET $%d
	`,
		schema.CatalogTitle.ID, schema.CatalogTitle.Name, schema.CatalogTitle.Year,
		schema.CatalogTitle.Description, schema.CatalogTitle.CategoryID,
		schema.CatalogTitle.CreatedAt, schema.CatalogTitle.UpdatedAt,
		schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		fromClause,
		schema.CatalogTitle.Name, schema.CatalogTitle.ID,
		len(args)-1, len(args))

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]Title, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, *t)
	}

	if err := repository.loadGenres(ctx, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, c.%s, c.%s
		FROM %s t LEFT JOIN %s c ON t.%s = c.%s
		WHERE t.%s = $1
	`,
		schema.CatalogTitle.ID, schema.CatalogTitle.Name, schema.CatalogTitle.Year,
		schema.CatalogTitle.Description, schema.CatalogTitle.CategoryID,
		schema.CatalogTitle.CreatedAt, schema.CatalogTitle.UpdatedAt,
		schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogTitle.Table, schema.CatalogCategory.Table,
		schema.CatalogTitle.CategoryID, schema.CatalogCategory.ID,
		schema.CatalogTitle.ID)

	t, err := scanTitle(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Title")
		}
		return nil, err
	}

	single := []Title{*t}
	if err := repository.loadGenres(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (repository *PostgresRepository) Create(ctx context.Context, title *Title, genreIDs []string) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.CatalogTitle.Table,
		schema.CatalogTitle.ID, schema.CatalogTitle.Name, schema.CatalogTitle.Year,
		schema.CatalogTitle.Description, schema.CatalogTitle.CategoryID,
		schema.CatalogTitle.CreatedAt, schema.CatalogTitle.UpdatedAt)

	_, err = transaction.Exec(ctx, insertQuery,
		title.ID, title.Name, title.Year, title.Description, title.CategoryID,
		title.CreatedAt, title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := replaceTitleGenres(ctx, transaction, title.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, title *Title, genreIDs []string, replaceGenres bool) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
		schema.CatalogTitle.Table,
		schema.CatalogTitle.Name, schema.CatalogTitle.Year, schema.CatalogTitle.Description,
		schema.CatalogTitle.CategoryID, schema.CatalogTitle.UpdatedAt,
		schema.CatalogTitle.ID)

	tag, err := transaction.Exec(ctx, updateQuery,
		title.ID, title.Name, title.Year, title.Description, title.CategoryID, title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CatalogTitleGenre.Table, schema.CatalogTitleGenre.TitleID)
		if _, err := transaction.Exec(ctx, deleteQuery, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := replaceTitleGenres(ctx, transaction, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

// # Internal Helpers

func scanTitle(row pgx.Row) (*Title, error) {
	t := &Title{}
	var categoryName, categorySlug *string

	err := row.Scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CategoryID,
		&t.CreatedAt, &t.UpdatedAt,
		&categoryName, &categorySlug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_title")
	}

	if categoryName != nil && categorySlug != nil {
		t.Category = &category.Ref{Name: *categoryName, Slug: *categorySlug}
	}
	t.Genres = make([]genre.Ref, 0)
	return t, nil
}

// loadGenres fills the Genres slice of each title with a single query
// over the join table.
func (repository *PostgresRepository) loadGenres(ctx context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := slice.Map(titles, func(t Title) string { return t.ID })
	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON tg.%s = g.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		schema.CatalogTitleGenre.TitleID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogTitleGenre.Table,
		schema.CatalogGenre.Table, schema.CatalogTitleGenre.GenreID, schema.CatalogGenre.ID,
		schema.CatalogTitleGenre.TitleID,
		schema.CatalogGenre.Name)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "load_title_genres")
	}
	defer rows.Close()

	byTitle := make(map[string][]genre.Ref, len(titles))
	for rows.Next() {
		var titleID string
		var ref genre.Ref
		if err := rows.Scan(&titleID, &ref.Name, &ref.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		byTitle[titleID] = append(byTitle[titleID], ref)
	}

	for i := range titles {
		if refs, ok := byTitle[titles[i].ID]; ok {
			titles[i].Genres = refs
		}
	}
	return nil
}

func replaceTitleGenres(ctx context.Context, transaction pgx.Tx, titleID string, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CatalogTitleGenre.Table,
		schema.CatalogTitleGenre.TitleID, schema.CatalogTitleGenre.GenreID)

	for _, genreID := range genreIDs {
		if _, err := transaction.Exec(ctx, query, titleID, genreID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}
	return nil
}
