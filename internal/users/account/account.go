// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package account handles user profile management and administrative user CRUD.

It provides functionality for users to view and update their own identity
data, and for administrators to manage the whole member roster, including
role assignment.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Policy: Role changes are gated through the capability tier of the actor.
  - Security: Self-service updates can never escalate the caller's own role.
*/
package account

import (
	"context"

	"github.com/revuhq/revu/internal/users/auth"
	"github.com/revuhq/revu/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		List returns a page of user accounts ordered by username, with an
		optional case-insensitive username search.

		Parameters:
		  - context: context.Context
		  - search: string (empty means no filter)
		  - params: pagination.Params

		Returns:
		  - []auth.User: Page of accounts
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, search string, params pagination.Params) ([]auth.User, int, error)

	/*
		Create persists a new account provisioned by an administrator.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: apperr.Conflict on duplicate identity, or storage failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user, including role
		and operational flags.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete permanently removes an account. Authored reviews and comments
		are removed by the database cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, id string) error
}
