// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/sec"
	"github.com/revuhq/revu/internal/users/auth"
)

// # Test Fakes

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*auth.User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found with this username")
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// fakeCodeRepo is an in-memory ConfirmationCodeRepository. TTLs are ignored.
type fakeCodeRepo struct {
	mu     sync.Mutex
	hashes map[string]string // userID -> codeHash
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{hashes: map[string]string{}}
}

func (r *fakeCodeRepo) Set(_ context.Context, userID, codeHash string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[userID] = codeHash
	return nil
}

func (r *fakeCodeRepo) Get(_ context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hashes[userID]; ok {
		return h, nil
	}
	return "", apperr.NotFound("Confirmation code is invalid or expired")
}

// fakeTokenProvider returns a predictable token string.
type fakeTokenProvider struct {
	lastSubject sec.TokenSubject
}

func (p *fakeTokenProvider) GenerateAccessToken(subject sec.TokenSubject, _ time.Duration) (string, error) {
	p.lastSubject = subject
	return "signed-jwt-for-" + subject.Username, nil
}

// captureNotifier records every delivered message and can simulate outages.
type captureNotifier struct {
	mu    sync.Mutex
	sent  []string // message bodies
	fail  bool
	calls int
}

func (n *captureNotifier) Send(_ context.Context, _, _, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.fail {
		return assert.AnError
	}
	n.sent = append(n.sent, body)
	return nil
}

// extractCode pulls the raw confirmation code out of a captured message body.
func extractCode(t *testing.T, body string) string {
	t.Helper()
	const marker = "Your confirmation code is: "
	idx := -1
	for i := 0; i+len(marker) <= len(body); i++ {
		if body[i:i+len(marker)] == marker {
			idx = i + len(marker)
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0, "code marker not found in message body")
	end := idx
	for end < len(body) && body[end] != '\n' {
		end++
	}
	return body[idx:end]
}

func newTestService() (*auth.Service, *fakeUserRepo, *fakeCodeRepo, *fakeTokenProvider, *captureNotifier) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	tokens := &fakeTokenProvider{}
	mails := &captureNotifier{}
	return auth.NewService(users, codes, tokens, mails), users, codes, tokens, mails
}

// # Signup

/*
TestSignup_CreatesUserAndDeliversCode verifies the happy path: a new account
is persisted with the default role and a confirmation code is emailed.
*/
func TestSignup_CreatesUserAndDeliversCode(t *testing.T) {
	service, users, _, _, mails := newTestService()

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	// 1. The account exists with the default role
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	stored, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)

	// 2. Exactly one code was delivered
	require.Len(t, mails.sent, 1)
	assert.NotEmpty(t, extractCode(t, mails.sent[0]))
}

/*
TestSignup_IsIdempotentAndRotatesCode verifies that repeating the exact same
signup succeeds, creates no second account, and invalidates the first code.
*/
func TestSignup_IsIdempotentAndRotatesCode(t *testing.T) {
	service, users, _, _, mails := newTestService()
	ctx := context.Background()
	input := auth.SignupInput{Username: "alice", Email: "alice@example.com"}

	first, err := service.Signup(ctx, input)
	require.NoError(t, err)
	second, err := service.Signup(ctx, input)
	require.NoError(t, err)

	// 1. Same account both times, not a duplicate
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)

	// 2. Two distinct codes were delivered
	require.Len(t, mails.sent, 2)
	oldCode := extractCode(t, mails.sent[0])
	newCode := extractCode(t, mails.sent[1])
	assert.NotEqual(t, oldCode, newCode)

	// 3. Only the latest code exchanges for a token
	_, err = service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: oldCode})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeInvalidCredentials, appErr.Code)

	_, err = service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: newCode})
	assert.NoError(t, err)
}

/*
TestSignup_RejectsIdentityMismatch verifies the two Conflict branches:
taken username with a different email, and taken email with a new username.
*/
func TestSignup_RejectsIdentityMismatch(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input auth.SignupInput
	}{
		{"username taken by another email", auth.SignupInput{Username: "alice", Email: "other@example.com"}},
		{"email taken by another username", auth.SignupInput{Username: "bob", Email: "alice@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, apperr.IsConflict(err))
		})
	}
}

/*
TestSignup_EmailMatchIsCaseInsensitive verifies that re-signup with a
differently-cased email still resolves to the same account.
*/
func TestSignup_EmailMatchIsCaseInsensitive(t *testing.T) {
	service, users, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "Alice@Example.COM"})
	require.NoError(t, err)
	assert.Len(t, users.users, 1)
}

/*
TestSignup_SurvivesDeliveryOutage verifies that a mail failure does not fail
the signup: the account and the stored code must remain intact so the user
can retry.
*/
func TestSignup_SurvivesDeliveryOutage(t *testing.T) {
	service, users, codes, _, mails := newTestService()
	mails.fail = true

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	assert.Len(t, users.users, 1)
	assert.Equal(t, 1, mails.calls)

	// The code hash is stored even though delivery failed
	_, err = codes.Get(context.Background(), user.ID)
	assert.NoError(t, err)
}

// # Token Issuance

/*
TestIssueToken_DistinguishesFailureModes verifies that an unknown username
yields NOT_FOUND while a wrong code for an existing user yields
INVALID_CREDENTIALS. Clients rely on this distinction.
*/
func TestIssueToken_DistinguishesFailureModes(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// 1. Unknown username
	_, err = service.IssueToken(ctx, auth.TokenInput{Username: "ghost", ConfirmationCode: "whatever"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// 2. Known username, wrong code
	_, err = service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: "not-the-code"})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeInvalidCredentials, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

/*
TestIssueToken_EmbedsCapabilityFlags verifies that the issued token subject
carries the role and operational flags needed to rebuild the actor without
a database round trip.
*/
func TestIssueToken_EmbedsCapabilityFlags(t *testing.T) {
	service, users, _, tokens, mails := newTestService()
	ctx := context.Background()

	user, err := service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	code := extractCode(t, mails.sent[0])

	// Promote the account out of band
	users.mu.Lock()
	users.users[user.ID].Role = sec.RoleModerator
	users.users[user.ID].IsStaff = true
	users.mu.Unlock()

	token, err := service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)
	assert.Equal(t, "signed-jwt-for-alice", token)

	assert.Equal(t, user.ID, tokens.lastSubject.UserID)
	assert.Equal(t, string(sec.RoleModerator), tokens.lastSubject.Role)
	assert.True(t, tokens.lastSubject.IsStaff)
	assert.False(t, tokens.lastSubject.IsSuperuser)

	// The code survives use; a second exchange still works
	_, err = service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: code})
	assert.NoError(t, err)
}
