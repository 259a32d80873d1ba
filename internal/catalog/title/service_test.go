// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package title_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuhq/revu/internal/catalog/category"
	"github.com/revuhq/revu/internal/catalog/genre"
	"github.com/revuhq/revu/internal/catalog/title"
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// # Test Fakes

type fakeTitleRepo struct {
	titles map[string]*title.Title
	genres map[string][]string
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{
		titles: make(map[string]*title.Title),
		genres: make(map[string][]string),
	}
}

func (r *fakeTitleRepo) List(_ context.Context, _ title.Filter, _ pagination.Params) ([]title.Title, int, error) {
	out := make([]title.Title, 0, len(r.titles))
	for _, t := range r.titles {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (r *fakeTitleRepo) FindByID(_ context.Context, id string) (*title.Title, error) {
	t, ok := r.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTitleRepo) Create(_ context.Context, t *title.Title, genreIDs []string) error {
	copied := *t
	r.titles[t.ID] = &copied
	r.genres[t.ID] = genreIDs
	return nil
}

func (r *fakeTitleRepo) Update(_ context.Context, t *title.Title, genreIDs []string, replaceGenres bool) error {
	if _, ok := r.titles[t.ID]; !ok {
		return apperr.NotFound("Title")
	}
	copied := *t
	r.titles[t.ID] = &copied
	if replaceGenres {
		r.genres[t.ID] = genreIDs
	}
	return nil
}

func (r *fakeTitleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.titles, id)
	return nil
}

type fakeCategoryRepo struct {
	bySlug map[string]*category.Category
}

func (r *fakeCategoryRepo) List(_ context.Context, _ string, _ pagination.Params) ([]category.Category, int, error) {
	return nil, 0, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	c, ok := r.bySlug[slug]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, _ *category.Category) error { return nil }
func (r *fakeCategoryRepo) DeleteBySlug(_ context.Context, _ string) error { return nil }

type fakeGenreRepo struct {
	bySlug map[string]genre.Genre
}

func (r *fakeGenreRepo) List(_ context.Context, _ string, _ pagination.Params) ([]genre.Genre, int, error) {
	return nil, 0, nil
}

func (r *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]genre.Genre, error) {
	out := make([]genre.Genre, 0, len(slugs))
	for _, slug := range slugs {
		if g, ok := r.bySlug[slug]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGenreRepo) Create(_ context.Context, _ *genre.Genre) error { return nil }
func (r *fakeGenreRepo) DeleteBySlug(_ context.Context, _ string) error { return nil }

type fakeRatingSource struct {
	ratings map[string]title.Rating
}

func (s *fakeRatingSource) ForTitles(_ context.Context, titleIDs []string) (map[string]title.Rating, error) {
	out := make(map[string]title.Rating)
	for _, id := range titleIDs {
		if r, ok := s.ratings[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func newTestService() (*title.Service, *fakeTitleRepo, *fakeRatingSource) {
	titleRepo := newFakeTitleRepo()
	categoryRepo := &fakeCategoryRepo{bySlug: map[string]*category.Category{
		"books": {ID: uuidv7.New(), Name: "Books", Slug: "books"},
	}}
	genreRepo := &fakeGenreRepo{bySlug: map[string]genre.Genre{
		"drama":  {ID: uuidv7.New(), Name: "Drama", Slug: "drama"},
		"comedy": {ID: uuidv7.New(), Name: "Comedy", Slug: "comedy"},
	}}
	ratings := &fakeRatingSource{ratings: make(map[string]title.Rating)}

	return title.NewService(titleRepo, categoryRepo, genreRepo, ratings), titleRepo, ratings
}

// # Rating Aggregation

/*
TestGet_ComputesRatingFromReviewScores verifies that a title's rating is
the rounded mean of its review scores, and that a title without reviews
reports no rating at all.
*/
func TestGet_ComputesRatingFromReviewScores(t *testing.T) {
	service, _, ratings := newTestService()
	ctx := context.Background()

	// 1. Register two titles.
	rated, err := service.Create(ctx, title.CreateTitleInput{Name: "Rated Work", Year: 2001})
	require.NoError(t, err)
	unrated, err := service.Create(ctx, title.CreateTitleInput{Name: "Silent Work", Year: 2002})
	require.NoError(t, err)

	// 2. Scores 8, 6 and 10 average to 8 exactly.
	ratings.ratings[rated.ID] = title.Rating{Mean: 8.0, Count: 3}

	got, err := service.Get(ctx, rated.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8, *got.Rating)

	// 3. The untouched title stays unrated rather than defaulting to zero.
	got, err = service.Get(ctx, unrated.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

/*
TestRating_RoundsHalvesUp verifies the transport rounding of fractional
means: exact halves round up, everything else rounds to nearest.
*/
func TestRating_RoundsHalvesUp(t *testing.T) {
	cases := []struct {
		mean     float64
		expected int
	}{
		{7.5, 8},
		{7.49, 7},
		{8.5, 9},
		{1.0, 1},
		{10.0, 10},
	}

	for _, tc := range cases {
		r := title.Rating{Mean: tc.mean, Count: 2}
		assert.Equal(t, tc.expected, r.Rounded(), "mean %v", tc.mean)
	}
}

// # Slug Resolution

/*
TestCreate_ResolvesCategoryAndGenreSlugs verifies that known slugs are
expanded into embedded refs and unknown slugs are rejected as
validation failures rather than silently dropped.
*/
func TestCreate_ResolvesCategoryAndGenreSlugs(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	// 1. Known slugs resolve.
	created, err := service.Create(ctx, title.CreateTitleInput{
		Name:         "Resolved Work",
		Year:         1999,
		CategorySlug: "books",
		GenreSlugs:   []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "books", created.Category.Slug)
	assert.Len(t, created.Genres, 2)

	// 2. An unknown genre slug fails the whole request.
	_, err = service.Create(ctx, title.CreateTitleInput{
		Name:       "Broken Work",
		Year:       1999,
		GenreSlugs: []string{"drama", "polka"},
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidationError, appErr.Code)

	// 3. Same for an unknown category slug.
	_, err = service.Create(ctx, title.CreateTitleInput{
		Name:         "Broken Work",
		Year:         1999,
		CategorySlug: "vinyl",
	})
	require.Error(t, err)
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidationError, appErr.Code)
}

/*
TestCreate_RejectsFutureYear verifies that a publication year beyond the
current calendar year is rejected.
*/
func TestCreate_RejectsFutureYear(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), title.CreateTitleInput{
		Name: "Time Machine",
		Year: 3000,
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidationError, appErr.Code)
}

// # Partial Updates

/*
TestUpdate_ClearsCategoryWithEmptySlug verifies that PATCHing an empty
category slug detaches the category while leaving other fields alone.
*/
func TestUpdate_ClearsCategoryWithEmptySlug(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateTitleInput{
		Name:         "Categorised Work",
		Year:         2010,
		CategorySlug: "books",
	})
	require.NoError(t, err)
	require.NotNil(t, created.Category)

	empty := ""
	updated, err := service.Update(ctx, created.ID, title.UpdateTitleInput{CategorySlug: &empty})
	require.NoError(t, err)

	assert.Nil(t, updated.Category)
	assert.Equal(t, "Categorised Work", updated.Name)
	assert.Equal(t, 2010, updated.Year)
}

/*
TestUpdate_ReplacesGenreSet verifies that supplying a genre list swaps
the full set and omitting it keeps the existing one.
*/
func TestUpdate_ReplacesGenreSet(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateTitleInput{
		Name:       "Genred Work",
		Year:       2010,
		GenreSlugs: []string{"drama", "comedy"},
	})
	require.NoError(t, err)
	require.Len(t, repo.genres[created.ID], 2)

	// 1. A new list replaces the old set entirely.
	newGenres := []string{"comedy"}
	updated, err := service.Update(ctx, created.ID, title.UpdateTitleInput{GenreSlugs: &newGenres})
	require.NoError(t, err)
	assert.Len(t, updated.Genres, 1)
	assert.Len(t, repo.genres[created.ID], 1)

	// 2. Omitting the list leaves the stored set untouched.
	name := "Renamed Work"
	_, err = service.Update(ctx, created.ID, title.UpdateTitleInput{Name: &name})
	require.NoError(t, err)
	assert.Len(t, repo.genres[created.ID], 1)
}
