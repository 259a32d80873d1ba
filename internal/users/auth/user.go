// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package auth implements the user identity layer of the Revu platform.

It defines the core domain entity (User) and the passwordless signup flow:
accounts are created with a username and email, receive a confirmation code
by email, and exchange that code for a JWT access token.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/revuhq/revu/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Revu platform.
type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Role        sec.UserRole `json:"role"`
	IsStaff     bool         `json:"-"` // Operational flag, never exposed over the API.
	IsSuperuser bool         `json:"-"` // Operational flag, never exposed over the API.
	Bio         string       `json:"bio,omitempty"`
	FirstName   string       `json:"first_name,omitempty"`
	LastName    string       `json:"last_name,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldAccessToken      = "token"
	FieldMessage          = "message"
)
