// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/policy"
	"github.com/revuhq/revu/internal/platform/sec"
	"github.com/revuhq/revu/internal/users/account"
	"github.com/revuhq/revu/internal/users/auth"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/pointer"
)

// fakeAccountRepo is an in-memory AccountRepository.
type fakeAccountRepo struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeAccountRepo(seed ...*auth.User) *fakeAccountRepo {
	repo := &fakeAccountRepo{users: map[string]*auth.User{}}
	for _, u := range seed {
		clone := *u
		repo.users[u.ID] = &clone
	}
	return repo
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) List(_ context.Context, _ string, _ pagination.Params) ([]auth.User, int, error) {
	var out []auth.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeAccountRepo) Create(_ context.Context, user *auth.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestUpdateProfile_RevertsRoleForRegularUsers verifies the escalation guard:
a regular user PATCHing their own role keeps the rest of the patch but not
the role change.
*/
func TestUpdateProfile_RevertsRoleForRegularUsers(t *testing.T) {
	user := &auth.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, discardLogger())

	actor := policy.Actor{UserID: "u1", Username: "alice", Authenticated: true, Tier: policy.TierUser}
	adminRole := sec.RoleAdmin

	updated, err := service.UpdateProfile(context.Background(), actor, account.UpdateProfileInput{
		Bio:  pointer.To("I review things"),
		Role: &adminRole,
	})
	require.NoError(t, err)

	// 1. The benign field was applied
	assert.Equal(t, "I review things", updated.Bio)

	// 2. The role change was silently discarded, not rejected
	assert.Equal(t, sec.RoleUser, updated.Role)
	assert.Equal(t, sec.RoleUser, repo.users["u1"].Role)
}

/*
TestUpdateProfile_AppliesRoleForAdmins verifies that admin-tier actors can
change the role through the same path.
*/
func TestUpdateProfile_AppliesRoleForAdmins(t *testing.T) {
	user := &auth.User{ID: "a1", Username: "root", Email: "root@example.com", Role: sec.RoleAdmin}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, discardLogger())

	actor := policy.Actor{UserID: "a1", Username: "root", Authenticated: true, Tier: policy.TierAdmin}
	modRole := sec.RoleModerator

	updated, err := service.UpdateProfile(context.Background(), actor, account.UpdateProfileInput{
		Role: &modRole,
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

/*
TestCreateUser_DefaultsAndValidatesRole verifies admin provisioning: an empty
role defaults to user, and an unknown role is rejected before any write.
*/
func TestCreateUser_DefaultsAndValidatesRole(t *testing.T) {
	repo := newFakeAccountRepo()
	service := account.NewService(repo, discardLogger())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, account.CreateUserInput{
		Username: "bob",
		Email:    "bob@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, created.Role)

	_, err = service.CreateUser(ctx, account.CreateUserInput{
		Username: "eve",
		Email:    "eve@example.com",
		Role:     sec.UserRole("owner"),
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidationError, appErr.Code)
	assert.Empty(t, repo.usersByUsername("eve"))
}

/*
TestUpdateUser_AppliesRoleUnconditionally verifies the admin patch path
reassigns roles without an actor check (the route is admin-gated).
*/
func TestUpdateUser_AppliesRoleUnconditionally(t *testing.T) {
	user := &auth.User{ID: "u2", Username: "carol", Email: "carol@example.com", Role: sec.RoleUser}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, discardLogger())

	modRole := sec.RoleModerator
	updated, err := service.UpdateUser(context.Background(), "carol", account.UpdateUserInput{
		Role: &modRole,
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

/*
TestDeleteUser_RemovesAccount verifies deletion by username and the NotFound
propagation for unknown usernames.
*/
func TestDeleteUser_RemovesAccount(t *testing.T) {
	user := &auth.User{ID: "u3", Username: "dave", Email: "dave@example.com", Role: sec.RoleUser}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, discardLogger())
	ctx := context.Background()

	require.NoError(t, service.DeleteUser(ctx, "dave"))
	assert.Empty(t, repo.users)

	err := service.DeleteUser(ctx, "dave")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// usersByUsername is a test helper for asserting absence.
func (r *fakeAccountRepo) usersByUsername(username string) []*auth.User {
	var out []*auth.User
	for _, u := range r.users {
		if u.Username == username {
			out = append(out, u)
		}
	}
	return out
}
