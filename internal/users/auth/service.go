// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package auth implements the passwordless identity flow of the Revu platform.

It handles signup (create-or-reuse account plus confirmation code delivery)
and token issuance (confirmation code exchange for an RSA-signed JWT).

Architecture:

  - Service: Orchestrates business logic (Signup, IssueToken).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Codes).
  - Security: Leverages Bcrypt-hashed codes and RSA-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/ctxutil"
	"github.com/revuhq/revu/internal/platform/notifier"
	"github.com/revuhq/revu/internal/platform/sec"
	"github.com/revuhq/revu/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given subject.
	//
	// # Parameters
	//   - subject: The identity and capability flags to embed in the claims.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(subject sec.TokenSubject, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code hashing,
// signup, or token issuance logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository ConfirmationCodeRepository
	tokenProvider  TokenProvider
	notifier       notifier.Notifier
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo ConfirmationCodeRepository,
	tokenProv TokenProvider,
	notif notifier.Notifier,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		notifier:       notif,
	}
}

// # Signup Flow

// SignupInput holds the data required to enroll or re-confirm a member.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup creates an account or re-issues a confirmation code for an existing one.

Description: Idempotent enrollment. A repeat signup with the exact same
(username, email) pair is not an error: it generates a fresh confirmation
code and overwrites the previous one, invalidating it. A signup whose
username or email collides with a DIFFERENT identity is rejected with
Conflict.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created or existing entity
  - err: Conflict (identity mismatch) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {

	// Resolve by username first. The interesting cases branch on whether
	// the stored email matches the one being presented.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil:
		// Same username, different email: someone else owns this username.
		if !strings.EqualFold(user.Email, input.Email) {
			return nil, apperr.Conflict("Username is already taken")
		}
		// Exact match: fall through to code re-issuance below.

	case apperr.IsNotFound(err):
		// Fresh username. The email must not belong to another account.
		if _, emailErr := service.userRepository.FindByEmail(context, input.Email); emailErr == nil {
			return nil, apperr.Conflict("Email is already registered")
		}

		// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
		user = &User{
			ID:       uuidv7.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}

		if createErr := service.userRepository.Create(context, user); createErr != nil {
			// The UNIQUE constraints are the authoritative duplicate check
			// under concurrent signups; surface them as a client Conflict.
			if apperr.IsConflict(createErr) {
				return nil, apperr.Conflict("Username or email is already registered")
			}
			return nil, fmt.Errorf("auth_service_signup_failed: %w", createErr)
		}

	default:
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// Always mint a fresh confirmation code. Storing it keyed by user ID
	// overwrites the previous code, so only the latest one is valid.
	code, err := sec.GenerateSecureToken(ConfirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	// Never store the raw code; only its bcrypt hash.
	codeHash, err := sec.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_code_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.ID, codeHash, ConfirmationCodeTTL); err != nil {
		return nil, fmt.Errorf("auth_service_store_code_failed: %w", err)
	}

	// Delivery is a best-effort side effect: a mail outage must not fail
	// the signup, or the user could never retry.
	if err := service.notifier.Send(context, user.Email,
		"Your Revu confirmation code",
		fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n\nIt expires in 24 hours.", user.Username, code),
	); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "auth_confirmation_delivery_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	return user, nil
}

// # Token Issuance

// TokenInput defines credentials for a token exchange attempt.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

/*
IssueToken exchanges a valid confirmation code for a JWT access token.

Description: Verifies the code against the stored bcrypt hash using
constant-time comparison and issues an RSA-signed access token carrying the
user's capability flags. The code is NOT consumed on success: it stays valid
until its TTL lapses or a new signup overwrites it, so a user can re-request
a token without going through email again.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - string: Signed JWT access token
  - err: NotFound (unknown username), InvalidCredentials (bad code), or internal failures
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (string, error) {

	// An unknown username is a 404, not a 400. The two failure modes must
	// stay distinguishable for clients.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFound("User not found")
		}
		return "", fmt.Errorf("auth_service_token_lookup_failed: %w", err)
	}

	// Absent or expired code reads as bad credentials, never as a missing user.
	codeHash, err := service.codeRepository.Get(context, user.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.InvalidCredentials("Invalid or expired confirmation code")
		}
		return "", fmt.Errorf("auth_service_token_code_lookup_failed: %w", err)
	}

	// Constant-time comparison via bcrypt to prevent timing attacks.
	if !sec.CheckCodeHash(input.ConfirmationCode, codeHash) {
		return "", apperr.InvalidCredentials("Invalid or expired confirmation code")
	}

	token, err := service.tokenProvider.GenerateAccessToken(sec.TokenSubject{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return token, nil
}
