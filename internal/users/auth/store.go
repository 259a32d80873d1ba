// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Volatile Data Access

// ConfirmationCodeRepository defines the contract for storing pending
// confirmation codes.
//
// # Single Active Code
//
// The store keys codes by user ID, not by code value. Setting a new code
// for a user therefore overwrites the previous one, so at most one code is
// valid per user at any time.
type ConfirmationCodeRepository interface {

	/*
		Set stores the hash of a confirmation code for a user with a TTL,
		replacing any previously stored code.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - codeHash: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, userID string, codeHash string, ttl time.Duration) error

	/*
		Get retrieves the stored code hash for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: Stored bcrypt hash
		  - error: apperr.NotFound if absent or expired, or retrieval failures
	*/
	Get(context context.Context, userID string) (string, error)
}
