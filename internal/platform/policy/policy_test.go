// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/internal/platform/sec"
)

/*
TestResolveTier verifies that role + flag combinations fold into a single tier.
*/
func TestResolveTier(t *testing.T) {
	tests := []struct {
		name        string
		role        sec.UserRole
		isStaff     bool
		isSuperuser bool
		want        policy.Tier
	}{
		{"plain_user", sec.RoleUser, false, false, policy.TierUser},
		{"moderator", sec.RoleModerator, false, false, policy.TierModerator},
		{"admin_role", sec.RoleAdmin, false, false, policy.TierAdmin},
		{"staff_flag_overrides_role", sec.RoleUser, true, false, policy.TierAdmin},
		{"superuser_flag_overrides_role", sec.RoleUser, false, true, policy.TierAdmin},
		{"staff_moderator", sec.RoleModerator, true, false, policy.TierAdmin},
		{"corrupt_role_never_elevates", sec.UserRole("owner"), false, false, policy.TierUser},
		{"empty_role_defaults_to_user", sec.UserRole(""), false, false, policy.TierUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.ResolveTier(tt.role, tt.isStaff, tt.isSuperuser))
		})
	}
}

/*
TestDecide_Anonymous checks that anonymous actors can read everything public
but can never write.
*/
func TestDecide_Anonymous(t *testing.T) {
	anon := policy.Anonymous()

	// Reads are public for catalog and content.
	assert.True(t, policy.Decide(anon, policy.OpRead, policy.ResourceCatalog, nil))
	assert.True(t, policy.Decide(anon, policy.OpRead, policy.ResourceContent, nil))

	// Profile reads require authentication.
	assert.False(t, policy.Decide(anon, policy.OpRead, policy.ResourceProfile, nil))

	// Every write is denied, with or without a target.
	target := &policy.Target{AuthorID: "someone"}
	for _, op := range []policy.Operation{policy.OpCreate, policy.OpUpdate, policy.OpDelete} {
		for _, res := range []policy.Resource{policy.ResourceCatalog, policy.ResourceContent, policy.ResourceProfile} {
			assert.False(t, policy.Decide(anon, op, res, nil))
			assert.False(t, policy.Decide(anon, op, res, target))
		}
	}
}

/*
TestDecide_Catalog verifies the admin gate on administrative resources.
*/
func TestDecide_Catalog(t *testing.T) {
	tests := []struct {
		name  string
		tier  policy.Tier
		op    policy.Operation
		allow bool
	}{
		{"user_cannot_create", policy.TierUser, policy.OpCreate, false},
		{"user_cannot_delete", policy.TierUser, policy.OpDelete, false},
		{"moderator_cannot_create", policy.TierModerator, policy.OpCreate, false},
		{"moderator_cannot_update", policy.TierModerator, policy.OpUpdate, false},
		{"admin_can_create", policy.TierAdmin, policy.OpCreate, true},
		{"admin_can_update", policy.TierAdmin, policy.OpUpdate, true},
		{"admin_can_delete", policy.TierAdmin, policy.OpDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := policy.Actor{UserID: "u1", Authenticated: true, Tier: tt.tier}
			assert.Equal(t, tt.allow, policy.Decide(actor, tt.op, policy.ResourceCatalog, nil))
		})
	}
}

/*
TestDecide_Content verifies the author-or-moderator rule for reviews and comments.
*/
func TestDecide_Content(t *testing.T) {
	author := policy.Actor{UserID: "author-1", Authenticated: true, Tier: policy.TierUser}
	stranger := policy.Actor{UserID: "user-2", Authenticated: true, Tier: policy.TierUser}
	moderator := policy.Actor{UserID: "mod-1", Authenticated: true, Tier: policy.TierModerator}
	admin := policy.Actor{UserID: "adm-1", Authenticated: true, Tier: policy.TierAdmin}

	owned := &policy.Target{AuthorID: "author-1"}

	// Collection-level create requires authentication only.
	assert.True(t, policy.Decide(author, policy.OpCreate, policy.ResourceContent, nil))
	assert.True(t, policy.Decide(stranger, policy.OpCreate, policy.ResourceContent, nil))

	// Object-level writes: author, moderator, and admin pass; strangers do not.
	assert.True(t, policy.Decide(author, policy.OpUpdate, policy.ResourceContent, owned))
	assert.True(t, policy.Decide(author, policy.OpDelete, policy.ResourceContent, owned))
	assert.False(t, policy.Decide(stranger, policy.OpUpdate, policy.ResourceContent, owned))
	assert.False(t, policy.Decide(stranger, policy.OpDelete, policy.ResourceContent, owned))
	assert.True(t, policy.Decide(moderator, policy.OpUpdate, policy.ResourceContent, owned))
	assert.True(t, policy.Decide(moderator, policy.OpDelete, policy.ResourceContent, owned))
	assert.True(t, policy.Decide(admin, policy.OpDelete, policy.ResourceContent, owned))

	// Missing target on an object-level write fails closed, even for admins.
	assert.False(t, policy.Decide(admin, policy.OpUpdate, policy.ResourceContent, nil))
	assert.False(t, policy.Decide(author, policy.OpDelete, policy.ResourceContent, nil))
}

/*
TestDecide_Profile verifies self-access and admin override on user accounts.
*/
func TestDecide_Profile(t *testing.T) {
	self := policy.Actor{UserID: "u1", Authenticated: true, Tier: policy.TierUser}
	admin := policy.Actor{UserID: "adm", Authenticated: true, Tier: policy.TierAdmin}
	other := policy.Actor{UserID: "u2", Authenticated: true, Tier: policy.TierModerator}

	ownProfile := &policy.Target{AuthorID: "u1"}

	assert.True(t, policy.Decide(self, policy.OpRead, policy.ResourceProfile, ownProfile))
	assert.True(t, policy.Decide(self, policy.OpUpdate, policy.ResourceProfile, ownProfile))
	assert.True(t, policy.Decide(admin, policy.OpUpdate, policy.ResourceProfile, ownProfile))

	// Moderators have no special rights over other users' profiles.
	assert.False(t, policy.Decide(other, policy.OpRead, policy.ResourceProfile, ownProfile))
	assert.False(t, policy.Decide(other, policy.OpUpdate, policy.ResourceProfile, ownProfile))
}

/*
TestRequire maps denials onto 401 for anonymous actors and 403 otherwise.
*/
func TestRequire(t *testing.T) {
	anon := policy.Anonymous()
	user := policy.Actor{UserID: "u1", Authenticated: true, Tier: policy.TierUser}

	err := policy.Require(anon, policy.OpCreate, policy.ResourceContent, nil)
	assert.EqualError(t, err, "Authentication required")

	err = policy.Require(user, policy.OpCreate, policy.ResourceCatalog, nil)
	assert.EqualError(t, err, "Insufficient permissions")

	assert.NoError(t, policy.Require(user, policy.OpCreate, policy.ResourceContent, nil))
	assert.NoError(t, policy.Require(anon, policy.OpRead, policy.ResourceCatalog, nil))
}

/*
TestActorFromClaims verifies actor snapshot reconstruction from token claims.
*/
func TestActorFromClaims(t *testing.T) {
	assert.Equal(t, policy.Anonymous(), policy.ActorFromClaims(nil))

	actor := policy.ActorFromClaims(&sec.AuthClaims{
		UserID:   "u1",
		Username: "alice",
		Role:     "user",
		IsStaff:  true,
	})

	assert.True(t, actor.Authenticated)
	assert.Equal(t, "u1", actor.UserID)
	assert.Equal(t, policy.TierAdmin, actor.Tier)
}
