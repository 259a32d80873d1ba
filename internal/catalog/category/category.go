// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package category implements the category taxonomy of the catalog.

Categories are the coarse type of a reviewed work ("Books", "Films",
"Music"). Every title belongs to at most one category.

# Architecture

  - Entity: Category, identified externally by its URL slug.
  - Writes: Admin-gated; reads are public.
*/
package category

import "time"

// Category represents a single catalog category.
type Category struct {
	ID        string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Ref is the embedded representation of a category inside a title payload.
type Ref struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MaxNameLength mirrors the column constraint on catalog.category.
const MaxNameLength = 256

// MaxSlugLength mirrors the column constraint on catalog.category.
const MaxSlugLength = 50
