// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package title

import (
	"context"
	"fmt"
	"time"

	"github.com/revuhq/revu/internal/catalog/category"
	"github.com/revuhq/revu/internal/catalog/genre"
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/pointer"
	"github.com/revuhq/revu/pkg/slice"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// Service holds the business logic for titles.
type Service struct {
	titleRepository    Repository
	categoryRepository category.Repository
	genreRepository    genre.Repository
	ratingSource       RatingSource
}

// NewService constructs a title Service.
func NewService(
	titleRepository Repository,
	categoryRepository category.Repository,
	genreRepository genre.Repository,
	ratingSource RatingSource,
) *Service {
	return &Service{
		titleRepository:    titleRepository,
		categoryRepository: categoryRepository,
		genreRepository:    genreRepository,
		ratingSource:       ratingSource,
	}
}

// CreateTitleInput carries the fields accepted when registering a title.
type CreateTitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

// UpdateTitleInput carries partial-update fields; nil means unchanged.
type UpdateTitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
List returns a page of titles matching the filter, each decorated with
its computed rating.
*/
func (s *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]Title, int, error) {
	titles, total, err := s.titleRepository.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("title_service_list_failed: %w", err)
	}

	if err := s.attachRatings(ctx, titles); err != nil {
		return nil, 0, fmt.Errorf("title_service_list_failed: %w", err)
	}

	return titles, total, nil
}

/*
Get returns a single title by ID, decorated with its computed rating.
*/
func (s *Service) Get(ctx context.Context, id string) (*Title, error) {
	t, err := s.titleRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("title_service_get_failed: %w", err)
	}

	single := []Title{*t}
	if err := s.attachRatings(ctx, single); err != nil {
		return nil, fmt.Errorf("title_service_get_failed: %w", err)
	}

	return &single[0], nil
}

/*
Create registers a new title.

Description: Category and genres are addressed by slug and must already
exist; an unknown slug is a validation error, not an implicit create.
The publication year may not lie in the future.
*/
func (s *Service) Create(ctx context.Context, input CreateTitleInput) (*Title, error) {
	if input.Year > time.Now().UTC().Year() {
		return nil, apperr.ValidationError("Invalid title payload",
			apperr.FieldError{Field: "year", Message: "Year must not be in the future"})
	}

	t := &Title{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if input.CategorySlug != "" {
		c, err := s.resolveCategory(ctx, input.CategorySlug)
		if err != nil {
			return nil, err
		}
		t.CategoryID = pointer.To(c.ID)
		t.Category = &category.Ref{Name: c.Name, Slug: c.Slug}
	}

	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	t.Genres = make([]genre.Ref, 0, len(genres))
	for _, g := range genres {
		t.Genres = append(t.Genres, genre.Ref{Name: g.Name, Slug: g.Slug})
	}

	genreIDs := slice.Map(genres, func(g genre.Genre) string { return g.ID })
	if err := s.titleRepository.Create(ctx, t, genreIDs); err != nil {
		return nil, fmt.Errorf("title_service_create_failed: %w", err)
	}

	return t, nil
}

/*
Update applies a partial update to a title. Supplying a genre list
replaces the full genre set; omitting it leaves the set untouched.
*/
func (s *Service) Update(ctx context.Context, id string, input UpdateTitleInput) (*Title, error) {
	t, err := s.titleRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("title_service_update_failed: %w", err)
	}

	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Year != nil {
		if *input.Year > time.Now().UTC().Year() {
			return nil, apperr.ValidationError("Invalid title payload",
				apperr.FieldError{Field: "year", Message: "Year must not be in the future"})
		}
		t.Year = *input.Year
	}
	if input.Description != nil {
		t.Description = *input.Description
	}

	if input.CategorySlug != nil {
		if *input.CategorySlug == "" {
			t.CategoryID = nil
			t.Category = nil
		} else {
			c, err := s.resolveCategory(ctx, *input.CategorySlug)
			if err != nil {
				return nil, err
			}
			t.CategoryID = pointer.To(c.ID)
			t.Category = &category.Ref{Name: c.Name, Slug: c.Slug}
		}
	}

	var genreIDs []string
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genres, err := s.resolveGenres(ctx, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		t.Genres = make([]genre.Ref, 0, len(genres))
		for _, g := range genres {
			t.Genres = append(t.Genres, genre.Ref{Name: g.Name, Slug: g.Slug})
		}
		genreIDs = slice.Map(genres, func(g genre.Genre) string { return g.ID })
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.titleRepository.Update(ctx, t, genreIDs, replaceGenres); err != nil {
		return nil, fmt.Errorf("title_service_update_failed: %w", err)
	}

	single := []Title{*t}
	if err := s.attachRatings(ctx, single); err != nil {
		return nil, fmt.Errorf("title_service_update_failed: %w", err)
	}
	return &single[0], nil
}

// Delete removes a title and, through the storage layer, its reviews.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.titleRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("title_service_delete_failed: %w", err)
	}
	return nil
}

// # Internal Helpers

func (s *Service) resolveCategory(ctx context.Context, slug string) (*category.Category, error) {
	c, err := s.categoryRepository.FindBySlug(ctx, slug)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ValidationError("Invalid title payload",
				apperr.FieldError{Field: "category", Message: fmt.Sprintf("Unknown category slug %q", slug)})
		}
		return nil, fmt.Errorf("title_service_resolve_category_failed: %w", err)
	}
	return c, nil
}

func (s *Service) resolveGenres(ctx context.Context, slugs []string) ([]genre.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.genreRepository.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("title_service_resolve_genres_failed: %w", err)
	}

	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, apperr.ValidationError("Invalid title payload",
				apperr.FieldError{Field: "genre", Message: fmt.Sprintf("Unknown genre slug %q", slug)})
		}
	}

	return genres, nil
}

// attachRatings decorates titles in place with their review aggregates.
// Titles without reviews keep a nil rating.
func (s *Service) attachRatings(ctx context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := slice.Map(titles, func(t Title) string { return t.ID })
	ratings, err := s.ratingSource.ForTitles(ctx, ids)
	if err != nil {
		return fmt.Errorf("title_service_attach_ratings_failed: %w", err)
	}

	for i := range titles {
		if r, ok := ratings[titles[i].ID]; ok && r.Count > 0 {
			titles[i].Rating = pointer.To(r.Rounded())
		}
	}
	return nil
}
