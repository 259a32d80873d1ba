// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package review

import (
	"context"
	"fmt"
	"time"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// Service holds the business logic for reviews.
type Service struct {
	reviewRepository Repository
}

// NewService constructs a review Service.
func NewService(repository Repository) *Service {
	return &Service{reviewRepository: repository}
}

// CreateReviewInput carries the fields accepted when posting a review.
type CreateReviewInput struct {
	Text  string
	Score int
}

// UpdateReviewInput carries partial-update fields; nil means unchanged.
type UpdateReviewInput struct {
	Text  *string
	Score *int
}

/*
List returns a page of reviews for a title.

Returns:
  - apperr.NotFound when the title itself does not exist, so a paging
    request against a ghost title is a 404 rather than an empty page.
*/
func (s *Service) List(ctx context.Context, titleID string, params pagination.Params) ([]Review, int, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepository.ListByTitle(ctx, titleID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("review_service_list_failed: %w", err)
	}
	return reviews, total, nil
}

// Get returns a single review scoped to its title.
func (s *Service) Get(ctx context.Context, titleID, reviewID string) (*Review, error) {
	r, err := s.reviewRepository.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("review_service_get_failed: %w", err)
	}
	return r, nil
}

/*
Create posts a new review by the acting user.

Description: The one-review-per-author-per-title rule is checked up
front for a friendly error, with the storage unique index as the
authoritative backstop for concurrent submissions.
*/
func (s *Service) Create(ctx context.Context, actor policy.Actor, titleID string, input CreateReviewInput) (*Review, error) {
	if err := policy.Require(actor, policy.OpCreate, policy.ResourceContent, nil); err != nil {
		return nil, err
	}

	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if err := requireScoreInRange(input.Score); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepository.ExistsForAuthor(ctx, titleID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("You have already reviewed this title")
	}

	r := &Review{
		ID:        uuidv7.New(),
		TitleID:   titleID,
		AuthorID:  actor.UserID,
		Author:    actor.Username,
		Text:      input.Text,
		Score:     input.Score,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.reviewRepository.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}
	return r, nil
}

/*
Update applies a partial edit to a review.

Description: Object-level authorization: the author, or a moderator and
above. Editing never re-triggers the duplicate rule since the review
identity (author, title) is immutable.
*/
func (s *Service) Update(ctx context.Context, actor policy.Actor, titleID, reviewID string, input UpdateReviewInput) (*Review, error) {
	r, err := s.reviewRepository.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("review_service_update_failed: %w", err)
	}

	if err := policy.Require(actor, policy.OpUpdate, policy.ResourceContent, &policy.Target{AuthorID: r.AuthorID}); err != nil {
		return nil, err
	}

	if input.Text != nil {
		r.Text = *input.Text
	}
	if input.Score != nil {
		if err := requireScoreInRange(*input.Score); err != nil {
			return nil, err
		}
		r.Score = *input.Score
	}
	r.UpdatedAt = time.Now().UTC()

	if err := s.reviewRepository.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("review_service_update_failed: %w", err)
	}
	return r, nil
}

// Delete removes a review under the same object-level rules as Update.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID string) error {
	r, err := s.reviewRepository.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return fmt.Errorf("review_service_delete_failed: %w", err)
	}

	if err := policy.Require(actor, policy.OpDelete, policy.ResourceContent, &policy.Target{AuthorID: r.AuthorID}); err != nil {
		return err
	}

	if err := s.reviewRepository.Delete(ctx, titleID, reviewID); err != nil {
		return fmt.Errorf("review_service_delete_failed: %w", err)
	}
	return nil
}

func requireScoreInRange(score int) error {
	if score < MinScore || score > MaxScore {
		return apperr.ValidationError("Invalid review payload", apperr.FieldError{
			Field:   "score",
			Message: fmt.Sprintf("Score must be between %d and %d", MinScore, MaxScore),
		})
	}
	return nil
}

func (s *Service) requireTitle(ctx context.Context, titleID string) error {
	exists, err := s.reviewRepository.TitleExists(ctx, titleID)
	if err != nil {
		return fmt.Errorf("review_service_title_lookup_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
