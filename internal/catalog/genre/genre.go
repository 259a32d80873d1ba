package genre

import (
	"context"
	"time"

	"github.com/revuhq/revu/pkg/pagination"
)

type Genre struct {
	ID        string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Ref is the embedded representation of a genre inside a title payload.
type Ref struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

const (
	MaxNameLength = 256
	MaxSlugLength = 50
)

type Repository interface {
	List(ctx context.Context, search string, params pagination.Params) ([]Genre, int, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Genre, error)
	Create(ctx context.Context, genre *Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}
