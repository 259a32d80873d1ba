// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package account provides the HTTP delivery layer for profile and user management.

It implements the RESTful interface for users to interact with their own
account data, and the admin-only roster endpoints.

# Security

All endpoints in this package require an active authentication session. The
roster endpoints are additionally gated behind the admin capability tier.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/middleware"
	requestutil "github.com/revuhq/revu/internal/platform/request"
	"github.com/revuhq/revu/internal/platform/respond"
	"github.com/revuhq/revu/internal/platform/sec"
	"github.com/revuhq/revu/internal/platform/validate"
	"github.com/revuhq/revu/internal/users/auth"
	"github.com/revuhq/revu/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// Self-service profile. Registered before {username} so the literal
	// segment wins over the wildcard.
	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)

	// Administrative roster management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.listUsers)
		r.Post("/", handler.createUser)
		r.Get("/{username}", handler.getUser)
		r.Patch("/{username}", handler.updateUser)
		r.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Self-Service Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
// A role field is accepted but only honored for admin-tier callers.
type updateMeRequest struct {
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.
A non-admin caller sending a role change gets the rest of their patch
applied and the role silently reverted.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Bio != nil {
		v.MaxLen("bio", *input.Bio, 500)
	}
	if input.FirstName != nil {
		v.MaxLen("first_name", *input.FirstName, 150)
	}
	if input.LastName != nil {
		v.MaxLen("last_name", *input.LastName, 150)
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var role *sec.UserRole
	if input.Role != nil {
		parsed := sec.UserRole(*input.Role)
		role = &parsed
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), actor, UpdateProfileInput{
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administrative Endpoints

/*
GET /api/v1/users.

Description: Lists accounts with pagination and optional username search.

Request:
  - search: string (query, optional)
  - page, limit: int (query, optional)

Response:
  - 200: []User: Paginated account list
  - 403: ErrForbidden: Admin tier required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.ListUsers(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

// createUserRequest defines the payload for administrative account creation.
type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

/*
POST /api/v1/users.

Description: Provisions a new account directly, optionally with an elevated role.

Request:
  - body: createUserRequest

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON/Validation: Invalid input
  - 409: ErrConflict: Username or email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		Email(auth.FieldEmail, input.Email)
	if input.Role != "" {
		v.OneOf("role", input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		Role:      sec.UserRole(input.Role),
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Description: Retrieves a single account by username.

Response:
  - 200: User: Hydrated account
  - 404: ErrNotFound: No account with this username
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")
	if username == "" {
		respond.Error(writer, request, apperr.NotFound("User"))
		return
	}

	user, err := handler.accountService.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the payload for administrative account patches.
type updateUserRequest struct {
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

/*
PATCH /api/v1/users/{username}.

Description: Applies administrative changes to an arbitrary account,
including role reassignment.

Request:
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: ErrInvalidJSON/Validation: Invalid input
  - 404: ErrNotFound: No account with this username
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	if input.Email != nil {
		v.Email(auth.FieldEmail, *input.Email)
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var role *sec.UserRole
	if input.Role != nil {
		parsed := sec.UserRole(*input.Role)
		role = &parsed
	}

	user, err := handler.accountService.UpdateUser(request.Context(), username, UpdateUserInput{
		Email:     input.Email,
		Role:      role,
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Description: Permanently removes an account and, via cascade, its reviews
and comments.

Response:
  - 204: No Content: Account removed
  - 404: ErrNotFound: No account with this username
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")

	if err := handler.accountService.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
