// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package category

import (
	"context"
	"fmt"
	"time"

	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/slug"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// Service holds the business logic for categories.
type Service struct {
	repository Repository
}

// NewService constructs a category Service.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
List returns a page of categories, optionally filtered by a
case-insensitive name search.
*/
func (s *Service) List(ctx context.Context, search string, params pagination.Params) ([]Category, int, error) {
	categories, total, err := s.repository.List(ctx, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("category_service_list_failed: %w", err)
	}
	return categories, total, nil
}

/*
Create registers a new category. When no slug is supplied one is
derived from the name.
*/
func (s *Service) Create(ctx context.Context, name, slugValue string) (*Category, error) {
	if slugValue == "" {
		slugValue = slug.From(name)
	}

	category := &Category{
		ID:        uuidv7.New(),
		Name:      name,
		Slug:      slugValue,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("category_service_create_failed: %w", err)
	}
	return category, nil
}

// Delete removes the category addressed by slug. Titles referencing it
// are detached, not deleted.
func (s *Service) Delete(ctx context.Context, slugValue string) error {
	if err := s.repository.DeleteBySlug(ctx, slugValue); err != nil {
		return fmt.Errorf("category_service_delete_failed: %w", err)
	}
	return nil
}
