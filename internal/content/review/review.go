// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package review implements user reviews of catalog titles.

A review is a scored opinion (1 to 10) attached to exactly one title.
Each user may hold at most one review per title; the constraint is
enforced both as an application pre-check and as a unique index in
storage, so concurrent duplicates cannot slip through.

# Authorization

Creation requires any authenticated user. Editing and deletion are
object-level decisions: the author may touch their own review, and
moderators and above may touch anyone's.
*/
package review

import (
	"context"
	"time"

	"github.com/revuhq/revu/pkg/pagination"
)

// Review represents a single scored review of a title.
type Review struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// # Constraints

const (
	MinScore      = 1
	MaxScore      = 10
	MaxTextLength = 5000
)

/*
Repository defines persistence operations for reviews.

Returns:
  - Not-found lookups yield apperr.NotFound.
  - A second review by the same author for the same title yields
    apperr.Conflict, backed by the storage unique index.
*/
type Repository interface {
	ListByTitle(ctx context.Context, titleID string, params pagination.Params) ([]Review, int, error)
	FindByID(ctx context.Context, titleID, reviewID string) (*Review, error)
	ExistsForAuthor(ctx context.Context, titleID, authorID string) (bool, error)
	TitleExists(ctx context.Context, titleID string) (bool, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, titleID, reviewID string) error
}
