// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

// Package comment implements threaded comments on reviews.
//
// Comments follow the same object-level authorization rules as reviews:
// anyone may read, authenticated users may post, and only the author or
// a moderator and above may edit or remove one.
package comment

import (
	"context"
	"time"

	"github.com/revuhq/revu/pkg/pagination"
)

// Comment represents a single comment on a review.
type Comment struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// MaxTextLength mirrors the column constraint on content.comment.
const MaxTextLength = 1000

// Repository defines persistence operations for comments.
type Repository interface {
	ListByReview(ctx context.Context, reviewID string, params pagination.Params) ([]Comment, int, error)
	FindByID(ctx context.Context, reviewID, commentID string) (*Comment, error)
	ReviewExists(ctx context.Context, titleID, reviewID string) (bool, error)
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, reviewID, commentID string) error
}
