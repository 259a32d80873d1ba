// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package category

import (
	"context"

	"github.com/revuhq/revu/pkg/pagination"
)

/*
Repository defines persistence operations for categories.

Parameters:
  - ctx: Context for cancellation.

Returns:
  - Not-found lookups yield apperr.NotFound.
  - Slug or name collisions on Create yield apperr.Conflict.
*/
type Repository interface {
	List(ctx context.Context, search string, params pagination.Params) ([]Category, int, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}
