// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package title implements the title registry of the catalog.

A title is a reviewable work (a specific book, film or record). It
carries one optional category, any number of genres, and a rating that
is never stored but always computed from the scores of its reviews.

# Rating Semantics

The rating of a title is the arithmetic mean of all its review scores,
rounded half-up for transport. A title without reviews is unrated and
serialises its rating as null; zero is a reserved impossible value
because scores start at 1.
*/
package title

import (
	"context"
	"math"
	"time"

	"github.com/revuhq/revu/internal/catalog/category"
	"github.com/revuhq/revu/internal/catalog/genre"
	"github.com/revuhq/revu/pkg/pagination"
)

// Title represents a single reviewable work.
type Title struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Year        int           `json:"year"`
	Description string        `json:"description,omitempty"`
	Category    *category.Ref `json:"category"`
	Genres      []genre.Ref   `json:"genre"`
	Rating      *int          `json:"rating"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`

	// CategoryID is the raw foreign key; Category is its resolved form.
	CategoryID *string `json:"-"`
}

// MaxNameLength mirrors the column constraint on catalog.title.
const MaxNameLength = 256

// Rating is the review-score aggregate of a single title.
type Rating struct {
	Mean  float64
	Count int
}

// Rounded converts the mean to the integer wire representation,
// rounding halves up (7.5 becomes 8).
func (r Rating) Rounded() int {
	return int(math.Floor(r.Mean + 0.5))
}

/*
RatingSource supplies review-score aggregates for titles.

The content domain owns review rows; the catalog reads them only in
aggregate through this interface, keeping the dependency one-way.

Returns:
  - A map keyed by title ID. Unrated titles are simply absent.
*/
type RatingSource interface {
	ForTitles(ctx context.Context, titleIDs []string) (map[string]Rating, error)
}

// Filter narrows a title listing. Zero values mean "no constraint".
// GenreSlugs matches titles carrying ANY of the listed genres.
type Filter struct {
	Search       string
	CategorySlug string
	GenreSlugs   []string
	Year         int
}

/*
Repository defines persistence operations for titles.

Parameters:
  - genreIDs: Resolved genre primary keys for the M2M join table.

Returns:
  - Not-found lookups yield apperr.NotFound.
*/
type Repository interface {
	List(ctx context.Context, filter Filter, params pagination.Params) ([]Title, int, error)
	FindByID(ctx context.Context, id string) (*Title, error)
	Create(ctx context.Context, title *Title, genreIDs []string) error
	Update(ctx context.Context, title *Title, genreIDs []string, replaceGenres bool) error
	Delete(ctx context.Context, id string) error
}
