// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/internal/platform/sec"
	"github.com/revuhq/revu/internal/users/auth"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
//
// It enforces the central escalation rule: only admin-tier actors may change
// a role, and self-service updates silently drop any role field.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Self-Service Profile

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
//
// Role is present but only honored for admin-tier actors; for everyone
// else it is silently discarded, never an error.
type UpdateProfileInput struct {
	Bio       *string
	FirstName *string
	LastName  *string
	Role      *sec.UserRole
}

/*
UpdateProfile applies a partial set of changes to a user's own account.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage. The role field is applied only
when the acting user holds the admin tier; a regular user PATCHing their own
role gets every other field applied and the role reverted.

Parameters:
  - context: context.Context
  - actor: policy.Actor (the authenticated caller)
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, actor policy.Actor, input UpdateProfileInput) (*auth.User, error) {

	user, err := service.accountRepository.FindByID(context, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	// Apply delta updates
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}

	// Apply delta updates
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	// Escalation guard: the role field only sticks for admin-tier actors.
	if input.Role != nil {
		if actor.Tier >= policy.TierAdmin {
			user.Role = *input.Role
		} else {
			service.logger.Info("user_role_change_reverted",
				slog.String("user_id", actor.UserID),
				slog.String("attempted_role", string(*input.Role)),
			)
		}
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", actor.UserID))

	return user, nil
}

// # Administrative User Management

/*
ListUsers returns a page of accounts, optionally filtered by username search.

Parameters:
  - context: context.Context
  - search: string
  - params: pagination.Params

Returns:
  - []auth.User: Page of accounts
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, search string, params pagination.Params) ([]auth.User, int, error) {
	users, total, err := service.accountRepository.List(context, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// CreateUserInput holds the fields an administrator may set when
// provisioning an account directly.
type CreateUserInput struct {
	Username  string
	Email     string
	Role      sec.UserRole
	Bio       string
	FirstName string
	LastName  string
}

/*
CreateUser provisions a new account on behalf of an administrator.

Description: Unlike signup, this path sets the role directly and sends no
confirmation code; the user must still go through the signup endpoint to
obtain one before they can authenticate.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *auth.User: Created entity
  - error: Conflict on duplicate identity, or storage failures
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*auth.User, error) {

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "role",
			Message: "Must be one of: user, moderator, admin",
		})
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      role,
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("Username or email is already registered")
		}
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.Info("user_account_provisioned",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
GetByUsername retrieves a single account by its username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated entity
  - error: Not found or retrieval failures
*/
func (service *Service) GetByUsername(context context.Context, username string) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_by_username_failed: %w", err)
	}
	return user, nil
}

// UpdateUserInput defines the fields an administrator can patch on any account.
type UpdateUserInput struct {
	Email     *string
	Role      *sec.UserRole
	Bio       *string
	FirstName *string
	LastName  *string
}

/*
UpdateUser applies administrative changes to an arbitrary account.

Description: This is the admin path; role changes are applied unconditionally
because the route itself is admin-gated.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateUserInput

Returns:
  - *auth.User: The updated entity
  - error: Not found, validation, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, username string, input UpdateUserInput) (*auth.User, error) {

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, fmt.Errorf("account_service_admin_update_lookup_failed: %w", err)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "role",
				Message: "Must be one of: user, moderator, admin",
			})
		}
		user.Role = *input.Role
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_admin_update_failed: %w", err)
	}

	service.logger.Info("user_account_updated_by_admin", slog.String("user_id", user.ID))

	return user, nil
}

/*
DeleteUser permanently removes an account by username.

Description: Authored reviews and comments disappear with the account via
the database cascade.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) DeleteUser(context context.Context, username string) error {

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return fmt.Errorf("account_service_delete_lookup_failed: %w", err)
	}

	if err := service.accountRepository.Delete(context, user.ID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", user.ID))

	return nil
}
