// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuhq/revu/internal/platform/apperr"
)

func TestValidator_Required(t *testing.T) {
	v := &Validator{}
	v.Required("name", "").Required("slug", "   ").Required("ok", "value")

	err := v.Err()
	require.Error(t, err)

	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeValidationError, appErr.Code)
	assert.Len(t, appErr.Details, 2)
}

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name  string
		value int
		valid bool
	}{
		{"below minimum", 0, false},
		{"at minimum", 1, true},
		{"middle", 5, true},
		{"at maximum", 10, true},
		{"above maximum", 11, false},
		{"negative", -3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Validator{}
			v.Range("score", tt.value, 1, 10)
			if tt.valid {
				assert.NoError(t, v.Err())
			} else {
				assert.Error(t, v.Err())
			}
		})
	}
}

func TestValidator_Username(t *testing.T) {
	valid := []string{"alice", "bob.smith", "user+tag", "a_b-c", "x@y"}
	for _, name := range valid {
		v := &Validator{}
		assert.NoError(t, v.Username("username", name).Err(), name)
	}

	invalid := []string{"me", "ME", "Me", "mE", "has space", "emoji😀"}
	for _, name := range invalid {
		v := &Validator{}
		assert.Error(t, v.Username("username", name).Err(), name)
	}
}

func TestValidator_Slug(t *testing.T) {
	valid := []string{"fiction", "science-fiction", "top-10", "a"}
	for _, s := range valid {
		v := &Validator{}
		assert.NoError(t, v.Slug("slug", s).Err(), s)
	}

	invalid := []string{"", "Fiction", "-leading", "trailing-", "two--hyphens", "with space"}
	for _, s := range invalid {
		v := &Validator{}
		assert.Error(t, v.Slug("slug", s).Err(), s)
	}
}

func TestValidator_Email(t *testing.T) {
	v := &Validator{}
	assert.NoError(t, v.Email("email", "alice@example.com").Err())

	v = &Validator{}
	assert.Error(t, v.Email("email", "not-an-email").Err())
}

func TestValidator_MaxLen(t *testing.T) {
	v := &Validator{}
	assert.NoError(t, v.MaxLen("text", "short", 10).Err())

	v = &Validator{}
	assert.Error(t, v.MaxLen("text", "this is way too long", 10).Err())

	// Unicode characters count as one, not their byte length.
	v = &Validator{}
	assert.NoError(t, v.MaxLen("text", "héllo wörld", 11).Err())
}

func TestValidator_Chaining(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("username", "alice").
		Username("username", "alice").
		Email("email", "alice@example.com").
		Err()
	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

func TestRequiredError(t *testing.T) {
	err := RequiredError("score", "Must be between 1 and 10")
	require.Len(t, err.Details, 1)
	assert.Equal(t, "score", err.Details[0].Field)
}
