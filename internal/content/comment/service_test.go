// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuhq/revu/internal/content/comment"
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/uuidv7"
)

type reviewRef struct {
	titleID  string
	reviewID string
}

type fakeCommentRepo struct {
	reviews  map[reviewRef]bool
	comments map[string]*comment.Comment
}

func newFakeCommentRepo(refs ...reviewRef) *fakeCommentRepo {
	repo := &fakeCommentRepo{
		reviews:  make(map[reviewRef]bool),
		comments: make(map[string]*comment.Comment),
	}
	for _, ref := range refs {
		repo.reviews[ref] = true
	}
	return repo
}

func (r *fakeCommentRepo) ListByReview(_ context.Context, reviewID string, _ pagination.Params) ([]comment.Comment, int, error) {
	out := make([]comment.Comment, 0)
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, reviewID, commentID string) (*comment.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommentRepo) ReviewExists(_ context.Context, titleID, reviewID string) (bool, error) {
	return r.reviews[reviewRef{titleID: titleID, reviewID: reviewID}], nil
}

func (r *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, reviewID, commentID string) error {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(r.comments, commentID)
	return nil
}

func actor(username string, tier policy.Tier) policy.Actor {
	return policy.Actor{
		UserID:        uuidv7.New(),
		Username:      username,
		Authenticated: true,
		Tier:          tier,
	}
}

/*
TestCreate_RequiresReviewUnderTitle verifies that a comment can only be
posted on a review that exists under the addressed title: a valid
review reached through the wrong title is still a 404.
*/
func TestCreate_RequiresReviewUnderTitle(t *testing.T) {
	titleID, reviewID := uuidv7.New(), uuidv7.New()
	service := comment.NewService(newFakeCommentRepo(reviewRef{titleID: titleID, reviewID: reviewID}))
	ctx := context.Background()

	alice := actor("alice", policy.TierUser)

	// 1. Correct nesting passes.
	created, err := service.Create(ctx, alice, titleID, reviewID, "Agreed!")
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Author)

	// 2. Same review reached through a different title is not found.
	_, err = service.Create(ctx, alice, uuidv7.New(), reviewID, "Lost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCreate_RejectsAnonymousActors verifies unauthenticated posting is a
401.
*/
func TestCreate_RejectsAnonymousActors(t *testing.T) {
	titleID, reviewID := uuidv7.New(), uuidv7.New()
	service := comment.NewService(newFakeCommentRepo(reviewRef{titleID: titleID, reviewID: reviewID}))

	_, err := service.Create(context.Background(), policy.Anonymous(), titleID, reviewID, "Hi")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeUnauthorized, appErr.Code)
}

/*
TestUpdateAndDelete_FollowOwnershipRules verifies that authorship and
the moderator tier gate comment mutation.
*/
func TestUpdateAndDelete_FollowOwnershipRules(t *testing.T) {
	titleID, reviewID := uuidv7.New(), uuidv7.New()
	service := comment.NewService(newFakeCommentRepo(reviewRef{titleID: titleID, reviewID: reviewID}))
	ctx := context.Background()

	author := actor("author", policy.TierUser)
	created, err := service.Create(ctx, author, titleID, reviewID, "Original")
	require.NoError(t, err)

	// 1. A stranger may neither edit nor delete.
	stranger := actor("stranger", policy.TierUser)
	_, err = service.Update(ctx, stranger, titleID, reviewID, created.ID, "Hijacked")
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeForbidden, appErr.Code)

	err = service.Delete(ctx, stranger, titleID, reviewID, created.ID)
	require.Error(t, err)

	// 2. The author may edit.
	updated, err := service.Update(ctx, author, titleID, reviewID, created.ID, "Edited")
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Text)

	// 3. A moderator may delete.
	moderator := actor("moderator", policy.TierModerator)
	require.NoError(t, service.Delete(ctx, moderator, titleID, reviewID, created.ID))
}

/*
TestObjectPaths_ValidateFullNesting verifies that reading, editing and
deleting a comment all require the correct title/review nesting: the
right comment reached through the wrong title is a 404.
*/
func TestObjectPaths_ValidateFullNesting(t *testing.T) {
	titleID, reviewID := uuidv7.New(), uuidv7.New()
	service := comment.NewService(newFakeCommentRepo(reviewRef{titleID: titleID, reviewID: reviewID}))
	ctx := context.Background()

	author := actor("author", policy.TierUser)
	created, err := service.Create(ctx, author, titleID, reviewID, "Nested")
	require.NoError(t, err)

	wrongTitle := uuidv7.New()

	// 1. Get through the wrong title fails.
	_, err = service.Get(ctx, wrongTitle, reviewID, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// 2. So do update and delete, even for the author.
	_, err = service.Update(ctx, author, wrongTitle, reviewID, created.ID, "Sneaky")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	err = service.Delete(ctx, author, wrongTitle, reviewID, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// 3. The proper nesting still works.
	got, err := service.Get(ctx, titleID, reviewID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nested", got.Text)
}
