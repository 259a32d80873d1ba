package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/database/schema"
	"github.com/revuhq/revu/internal/platform/dberr"
	"github.com/revuhq/revu/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context, search string, params pagination.Params) ([]Genre, int, error) {
	pattern := "%" + search + "%"

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE ($1 = '%%%%' OR %s ILIKE $1)`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		WHERE ($1 = '%%%%' OR %s ILIKE $1)
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.Name,
		schema.CatalogGenre.Name,
	)

	rows, err := repository.db.Query(ctx, query, pattern, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) FindBySlugs(ctx context.Context, slugs []string) ([]Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(ctx, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "find_genres_by_slugs")
	}
	defer rows.Close()

	genres := make([]Genre, 0, len(slugs))
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt)

	_, err := repository.db.Exec(ctx, query, genre.ID, genre.Name, genre.Slug, genre.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Genre name or slug is already in use")
		}
		return dberr.Wrap(err, "create_genre")
	}
	return nil
}

func (repository *PostgresRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	tag, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}
