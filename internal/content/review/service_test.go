// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package review_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuhq/revu/internal/content/review"
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// # Test Fakes

type reviewKey struct {
	titleID  string
	authorID string
}

type fakeReviewRepo struct {
	titles  map[string]bool
	reviews map[string]*review.Review
	byPair  map[reviewKey]string
}

func newFakeReviewRepo(titleIDs ...string) *fakeReviewRepo {
	repo := &fakeReviewRepo{
		titles:  make(map[string]bool),
		reviews: make(map[string]*review.Review),
		byPair:  make(map[reviewKey]string),
	}
	for _, id := range titleIDs {
		repo.titles[id] = true
	}
	return repo
}

func (r *fakeReviewRepo) ListByTitle(_ context.Context, titleID string, _ pagination.Params) ([]review.Review, int, error) {
	out := make([]review.Review, 0)
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			out = append(out, *rv)
		}
	}
	return out, len(out), nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, titleID, reviewID string) (*review.Review, error) {
	rv, ok := r.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	copied := *rv
	return &copied, nil
}

func (r *fakeReviewRepo) ExistsForAuthor(_ context.Context, titleID, authorID string) (bool, error) {
	_, exists := r.byPair[reviewKey{titleID: titleID, authorID: authorID}]
	return exists, nil
}

func (r *fakeReviewRepo) TitleExists(_ context.Context, titleID string) (bool, error) {
	return r.titles[titleID], nil
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *review.Review) error {
	key := reviewKey{titleID: rv.TitleID, authorID: rv.AuthorID}
	if _, exists := r.byPair[key]; exists {
		return apperr.Conflict("You have already reviewed this title")
	}
	copied := *rv
	r.reviews[rv.ID] = &copied
	r.byPair[key] = rv.ID
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rv *review.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return apperr.NotFound("Review")
	}
	copied := *rv
	r.reviews[rv.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, titleID, reviewID string) error {
	rv, ok := r.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return apperr.NotFound("Review")
	}
	delete(r.byPair, reviewKey{titleID: rv.TitleID, authorID: rv.AuthorID})
	delete(r.reviews, reviewID)
	return nil
}

func userActor(username string) policy.Actor {
	return policy.Actor{
		UserID:        uuidv7.New(),
		Username:      username,
		Authenticated: true,
		Tier:          policy.TierUser,
	}
}

// # Duplicate Guard

/*
TestCreate_EnforcesOneReviewPerTitle verifies the per-author uniqueness
rule: a second review of the same title is a conflict, while the same
author on another title and another author on the same title both pass.
*/
func TestCreate_EnforcesOneReviewPerTitle(t *testing.T) {
	titleA, titleB := uuidv7.New(), uuidv7.New()
	service := review.NewService(newFakeReviewRepo(titleA, titleB))
	ctx := context.Background()

	alice := userActor("alice")
	bob := userActor("bob")

	// 1. First review passes.
	_, err := service.Create(ctx, alice, titleA, review.CreateReviewInput{Text: "Great", Score: 9})
	require.NoError(t, err)

	// 2. Second review of the same title by the same author conflicts.
	_, err = service.Create(ctx, alice, titleA, review.CreateReviewInput{Text: "Changed my mind", Score: 3})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeConflict, appErr.Code)

	// 3. Same author, different title: fine.
	_, err = service.Create(ctx, alice, titleB, review.CreateReviewInput{Text: "Also great", Score: 8})
	assert.NoError(t, err)

	// 4. Different author, same title: fine.
	_, err = service.Create(ctx, bob, titleA, review.CreateReviewInput{Text: "Meh", Score: 5})
	assert.NoError(t, err)
}

/*
TestCreate_RequiresExistingTitle verifies that reviewing an unknown
title is a not-found error rather than an orphaned row.
*/
func TestCreate_RequiresExistingTitle(t *testing.T) {
	service := review.NewService(newFakeReviewRepo())

	_, err := service.Create(context.Background(), userActor("alice"), uuidv7.New(),
		review.CreateReviewInput{Text: "Ghost", Score: 7})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCreate_RejectsAnonymousActors verifies that an unauthenticated
actor gets a 401 before any storage work happens.
*/
func TestCreate_RejectsAnonymousActors(t *testing.T) {
	titleID := uuidv7.New()
	service := review.NewService(newFakeReviewRepo(titleID))

	_, err := service.Create(context.Background(), policy.Anonymous(), titleID,
		review.CreateReviewInput{Text: "Drive-by", Score: 1})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeUnauthorized, appErr.Code)
}

// # Object-Level Authorization

/*
TestUpdate_AuthorizesByOwnershipAndTier verifies that the author and
moderators may edit a review while an unrelated regular user may not.
*/
func TestUpdate_AuthorizesByOwnershipAndTier(t *testing.T) {
	titleID := uuidv7.New()
	repo := newFakeReviewRepo(titleID)
	service := review.NewService(repo)
	ctx := context.Background()

	author := userActor("author")
	created, err := service.Create(ctx, author, titleID, review.CreateReviewInput{Text: "Original", Score: 6})
	require.NoError(t, err)

	newText := "Edited"

	// 1. A stranger on the regular tier is rejected.
	_, err = service.Update(ctx, userActor("stranger"), titleID, created.ID,
		review.UpdateReviewInput{Text: &newText})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeForbidden, appErr.Code)

	// 2. The author may edit their own review.
	updated, err := service.Update(ctx, author, titleID, created.ID,
		review.UpdateReviewInput{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Text)
	assert.Equal(t, 6, updated.Score)

	// 3. A moderator may edit anyone's review.
	moderator := userActor("moderator")
	moderator.Tier = policy.TierModerator
	newScore := 2
	updated, err = service.Update(ctx, moderator, titleID, created.ID,
		review.UpdateReviewInput{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Score)
}

/*
TestDelete_AuthorizesByOwnershipAndTier verifies deletion follows the
same ownership rules as editing, and that deleting frees the author to
review the title again.
*/
func TestDelete_AuthorizesByOwnershipAndTier(t *testing.T) {
	titleID := uuidv7.New()
	service := review.NewService(newFakeReviewRepo(titleID))
	ctx := context.Background()

	author := userActor("author")
	created, err := service.Create(ctx, author, titleID, review.CreateReviewInput{Text: "Keep", Score: 7})
	require.NoError(t, err)

	// 1. A stranger cannot delete it.
	err = service.Delete(ctx, userActor("stranger"), titleID, created.ID)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeForbidden, appErr.Code)

	// 2. The author can.
	require.NoError(t, service.Delete(ctx, author, titleID, created.ID))

	// 3. The slot is free again.
	_, err = service.Create(ctx, author, titleID, review.CreateReviewInput{Text: "Again", Score: 8})
	assert.NoError(t, err)
}

/*
TestScoreRange_IsEnforcedByTheService verifies the 1..10 score bounds
hold at the service layer for both posting and editing, independent of
any transport-level validation.
*/
func TestScoreRange_IsEnforcedByTheService(t *testing.T) {
	titleID := uuidv7.New()
	service := review.NewService(newFakeReviewRepo(titleID))
	ctx := context.Background()
	author := userActor("author")

	// 1. Out-of-range scores are rejected on create.
	for _, score := range []int{0, 11, -3} {
		_, err := service.Create(ctx, author, titleID,
			review.CreateReviewInput{Text: "Bad", Score: score})
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperr.CodeValidationError, appErr.Code)
	}

	// 2. A valid score goes through.
	created, err := service.Create(ctx, author, titleID,
		review.CreateReviewInput{Text: "Fine", Score: review.MaxScore})
	require.NoError(t, err)

	// 3. Editing to an out-of-range score is rejected too.
	bad := 0
	_, err = service.Update(ctx, author, titleID, created.ID,
		review.UpdateReviewInput{Score: &bad})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidationError, appErr.Code)

	good := review.MinScore
	updated, err := service.Update(ctx, author, titleID, created.ID,
		review.UpdateReviewInput{Score: &good})
	require.NoError(t, err)
	assert.Equal(t, review.MinScore, updated.Score)
}
