// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package policy implements the role-based permission evaluator that gates every
read and write operation across the platform.

Architecture:

  - Actor: An immutable snapshot of the requesting identity. Its capability
    Tier is resolved exactly once at construction, folding the legacy
    staff/superuser flags into an admin-equivalent level.
  - Decide: A pure function of (Actor, Operation, Resource, Target). No I/O,
    no hidden mutation — the same inputs always produce the same decision.
  - Fail closed: ambiguous or missing role data denies rather than allows,
    except for plain read operations which are public by contract.

Handlers and middleware call [Require] which converts a deny into the
appropriate [apperr.AppError] (401 for anonymous actors, 403 otherwise).
*/
package policy

import (
	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/sec"
)

// # Capability Tiers

// Tier is the resolved capability level of an actor.
//
// Comparing tiers replaces the scattered role/is_staff/is_superuser boolean
// checks: higher tiers subsume every right of the tiers below them.
type Tier int

const (
	// TierAnonymous is an unauthenticated caller. Read-only everywhere.
	TierAnonymous Tier = iota

	// TierUser can create content and manage their own reviews/comments.
	TierUser

	// TierModerator can additionally edit or delete any review/comment.
	TierModerator

	// TierAdmin can additionally manage the catalog and user accounts.
	TierAdmin
)

// String returns the lowercase tier name for logging.
func (t Tier) String() string {
	switch t {
	case TierUser:
		return "user"
	case TierModerator:
		return "moderator"
	case TierAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// ResolveTier folds a role plus the staff/superuser flags into a single Tier.
//
// Staff and superuser accounts are admin-equivalent regardless of their role
// column. An unrecognized role resolves to TierUser, never higher: a corrupt
// role value must not grant elevated rights.
func ResolveTier(role sec.UserRole, isStaff, isSuperuser bool) Tier {
	if isStaff || isSuperuser {
		return TierAdmin
	}
	switch role {
	case sec.RoleAdmin:
		return TierAdmin
	case sec.RoleModerator:
		return TierModerator
	default:
		return TierUser
	}
}

// # Actor

// Actor is the authenticated-or-anonymous identity making a request.
//
// The zero value is the anonymous actor.
type Actor struct {
	// UserID identifies the account. Empty for anonymous actors.
	UserID string

	// Username is carried for audit logging only; decisions never depend on it.
	Username string

	// Authenticated reports whether the actor presented a valid token.
	Authenticated bool

	// Tier is the capability level resolved at construction. Meaningful only
	// when Authenticated is true.
	Tier Tier
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor {
	return Actor{}
}

// ActorFromClaims builds an Actor snapshot from verified token claims.
// A nil claims pointer yields the anonymous actor.
func ActorFromClaims(claims *sec.AuthClaims) Actor {
	if claims == nil {
		return Anonymous()
	}
	return Actor{
		UserID:        claims.UserID,
		Username:      claims.Username,
		Authenticated: true,
		Tier:          ResolveTier(sec.UserRole(claims.Role), claims.IsStaff, claims.IsSuperuser),
	}
}

// # Operations & Resources

// Operation classifies what the actor is trying to do.
type Operation int

const (
	// OpRead covers safe methods (GET, HEAD).
	OpRead Operation = iota

	// OpCreate is a collection-level write (POST to a list endpoint).
	OpCreate

	// OpUpdate is an object-level mutation (PATCH/PUT on a loaded object).
	OpUpdate

	// OpDelete is an object-level removal.
	OpDelete
)

// Resource classifies the target resource family.
type Resource int

const (
	// ResourceCatalog covers the administrative entities: categories, genres, titles.
	ResourceCatalog Resource = iota

	// ResourceContent covers user-generated entities: reviews and comments.
	ResourceContent

	// ResourceProfile covers user accounts, including the self "me" endpoint.
	ResourceProfile
)

// Target carries the permission-relevant snapshot of a loaded object.
// It is present only for object-level checks.
type Target struct {
	// AuthorID is the owning user of a content object, or the subject user
	// of a profile object.
	AuthorID string
}

// # Decision Function

// Decide is the pure permission evaluator.
//
// # Rules (strict hierarchy, short-circuiting)
//
//  1. Reads are public, except profile reads which require authentication.
//  2. Any non-read operation requires authentication.
//  3. Catalog writes require the admin tier.
//  4. Content creates require authentication only; object-level content
//     writes require authorship, or the moderator tier and above.
//  5. Profile access is restricted to the subject user, or the admin tier.
//
// Anything not explicitly allowed is denied.
func Decide(actor Actor, op Operation, resource Resource, target *Target) bool {
	if op == OpRead {
		if resource == ResourceProfile {
			return actor.Authenticated && (actor.Tier >= TierAdmin || isSubject(actor, target))
		}
		return true
	}

	if !actor.Authenticated {
		return false
	}

	switch resource {
	case ResourceCatalog:
		return actor.Tier >= TierAdmin

	case ResourceContent:
		if op == OpCreate {
			return true
		}
		// Object-level writes without a loaded target fail closed.
		if target == nil {
			return false
		}
		return target.AuthorID == actor.UserID || actor.Tier >= TierModerator

	case ResourceProfile:
		return actor.Tier >= TierAdmin || isSubject(actor, target)
	}

	return false
}

// Require evaluates [Decide] and converts a deny into a transport-ready error.
//
// Anonymous actors receive 401 so clients know to authenticate; everyone else
// receives a uniform 403 that does not leak whether the target exists.
func Require(actor Actor, op Operation, resource Resource, target *Target) error {
	if Decide(actor, op, resource, target) {
		return nil
	}
	if !actor.Authenticated {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("Insufficient permissions")
}

// isSubject reports whether the actor is the user a profile target refers to.
func isSubject(actor Actor, target *Target) bool {
	return target != nil && target.AuthorID != "" && target.AuthorID == actor.UserID
}
