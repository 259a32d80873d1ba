// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/ctxutil"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/internal/platform/sec"
	"github.com/revuhq/revu/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter (UUID/Slug) from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
Actor builds the permission-evaluator snapshot for the request.

Anonymous requests yield the zero-value anonymous actor; decisions on it
fail closed for every write.
*/
func Actor(request *http.Request) policy.Actor {
	return policy.ActorFromClaims(ctxutil.GetAuthUser(request.Context()))
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredActor ensures the request is authenticated and returns the actor snapshot.

Returns:
  - policy.Actor: The authenticated actor
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredActor(request *http.Request) (policy.Actor, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return policy.Anonymous(), err
	}
	return policy.ActorFromClaims(claims), nil
}
