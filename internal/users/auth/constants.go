// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Long-lived (24 hours) because there is no refresh flow; clients simply
	// re-request a token with their confirmation code.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeTTL is the duration a confirmation code remains valid.
	// Long-lived (24 hours) as users might not check email immediately.
	ConfirmationCodeTTL = 24 * time.Hour

	// ConfirmationCodeLength is the byte length of the random confirmation code.
	ConfirmationCodeLength = 16

	// MaxUsernameLength mirrors the column constraint on users.account.
	MaxUsernameLength = 150

	// MaxEmailLength mirrors the column constraint on users.account.
	MaxEmailLength = 254
)
