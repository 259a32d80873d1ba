// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// Service holds the business logic for comments.
type Service struct {
	commentRepository Repository
}

// NewService constructs a comment Service.
func NewService(repository Repository) *Service {
	return &Service{commentRepository: repository}
}

// List returns a page of comments for a review, confirming first that
// the review exists under the addressed title.
func (s *Service) List(ctx context.Context, titleID, reviewID string, params pagination.Params) ([]Comment, int, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepository.ListByReview(ctx, reviewID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return comments, total, nil
}

// Get returns a single comment scoped to its review and title.
func (s *Service) Get(ctx context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	c, err := s.commentRepository.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_get_failed: %w", err)
	}
	return c, nil
}

// Create posts a new comment by the acting user.
func (s *Service) Create(ctx context.Context, actor policy.Actor, titleID, reviewID, text string) (*Comment, error) {
	if err := policy.Require(actor, policy.OpCreate, policy.ResourceContent, nil); err != nil {
		return nil, err
	}

	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:        uuidv7.New(),
		ReviewID:  reviewID,
		AuthorID:  actor.UserID,
		Author:    actor.Username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.commentRepository.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}
	return c, nil
}

// Update edits a comment under object-level authorization. The full
// nesting is validated, so a comment is only reachable through its own
// title and review.
func (s *Service) Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID, text string) (*Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	c, err := s.commentRepository.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	if err := policy.Require(actor, policy.OpUpdate, policy.ResourceContent, &policy.Target{AuthorID: c.AuthorID}); err != nil {
		return nil, err
	}

	c.Text = text
	c.UpdatedAt = time.Now().UTC()

	if err := s.commentRepository.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}
	return c, nil
}

// Delete removes a comment under object-level authorization, with the
// same full-nesting validation as Update.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID string) error {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	c, err := s.commentRepository.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	if err := policy.Require(actor, policy.OpDelete, policy.ResourceContent, &policy.Target{AuthorID: c.AuthorID}); err != nil {
		return err
	}

	if err := s.commentRepository.Delete(ctx, reviewID, commentID); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}
	return nil
}

func (s *Service) requireReview(ctx context.Context, titleID, reviewID string) error {
	exists, err := s.commentRepository.ReviewExists(ctx, titleID, reviewID)
	if err != nil {
		return fmt.Errorf("comment_service_review_lookup_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
