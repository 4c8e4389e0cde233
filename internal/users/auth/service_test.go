// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternize/eternize/internal/platform/apperr"
	"github.com/eternize/eternize/internal/platform/sec"
	"github.com/eternize/eternize/internal/users/auth"
)

// # Test Doubles

// fakeUserRepo is an in-memory UserRepository mirroring the Postgres
// behaviour: lookups only return active accounts.
type fakeUserRepo struct {
	records map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{records: make(map[string]*auth.User)}
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.records[id]
	if !ok || !user.IsActive {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.records {
		if user.Email == email && user.IsActive {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	clone := *user
	repo.records[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.records[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (repo *fakeUserRepo) TouchLastLogin(_ context.Context, userID string) error {
	if user, ok := repo.records[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (repo *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	user, ok := repo.records[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.IsActive = false
	return nil
}

// fakeSessionStore is an in-memory SessionStore keyed by token hash.
type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (store *fakeSessionStore) Save(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	store.sessions[tokenHash] = userID
	return nil
}

func (store *fakeSessionStore) Resolve(_ context.Context, tokenHash string) (string, error) {
	userID, ok := store.sessions[tokenHash]
	if !ok {
		return "", apperr.NotFound("Session not found or expired")
	}
	return userID, nil
}

func (store *fakeSessionStore) Revoke(_ context.Context, tokenHash string) error {
	delete(store.sessions, tokenHash)
	return nil
}

func (store *fakeSessionStore) RevokeAll(_ context.Context, userID string) error {
	for hash, owner := range store.sessions {
		if owner == userID {
			delete(store.sessions, hash)
		}
	}
	return nil
}

func (store *fakeSessionStore) countFor(userID string) int {
	count := 0
	for _, owner := range store.sessions {
		if owner == userID {
			count++
		}
	}
	return count
}

// fakeResetTokens is an in-memory ResetTokenRepository.
type fakeResetTokens struct {
	tokens map[string]string
}

func newFakeResetTokens() *fakeResetTokens {
	return &fakeResetTokens{tokens: make(map[string]string)}
}

func (repo *fakeResetTokens) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.tokens[token] = userID
	return nil
}

func (repo *fakeResetTokens) Get(_ context.Context, token string) (string, error) {
	userID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (repo *fakeResetTokens) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

// stubTokenProvider mints deterministic access tokens.
type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID, _, _, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("access-token-for-%s", userID), nil
}

// # Fixture

type authFixture struct {
	service  *auth.Service
	users    *fakeUserRepo
	sessions *fakeSessionStore
	resets   *fakeResetTokens
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	resets := newFakeResetTokens()

	service := auth.NewService(
		users,
		sessions,
		resets,
		stubTokenProvider{},
		sec.NewAdminMatcher("admin@eternize.com.br"),
	)

	return &authFixture{service: service, users: users, sessions: sessions, resets: resets}
}

func (fixture *authFixture) register(t *testing.T, email, password string) *auth.User {
	t.Helper()
	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email:       email,
		Password:    password,
		DisplayName: "Test Member",
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestRegister_RoleAssignment verifies that only the configured administrator
email receives the admin role; everyone else is a regular member.
*/
func TestRegister_RoleAssignment(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		expectedRole sec.UserRole
	}{
		{name: "regular member", email: "ana@example.com", expectedRole: sec.RoleMember},
		{name: "configured admin", email: "admin@eternize.com.br", expectedRole: sec.RoleAdmin},
		{name: "admin email case insensitive", email: "Admin@Eternize.com.br", expectedRole: sec.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newAuthFixture()
			user := fixture.register(t, tt.email, "correct-horse-battery")

			assert.Equal(t, tt.expectedRole, user.Role)
			assert.True(t, user.IsActive)
			assert.NotEmpty(t, user.ID)
		})
	}
}

/*
TestRegister_NormalizesEmail verifies emails are lowercased and trimmed
before persistence so later logins match regardless of input casing.
*/
func TestRegister_NormalizesEmail(t *testing.T) {
	fixture := newAuthFixture()

	user := fixture.register(t, "  Maria@Example.COM ", "correct-horse-battery")

	assert.Equal(t, "maria@example.com", user.Email)
}

/*
TestRegister_DuplicateEmail verifies a second registration with the same
email fails with a Conflict without leaking storage details.
*/
func TestRegister_DuplicateEmail(t *testing.T) {
	fixture := newAuthFixture()
	fixture.register(t, "maria@example.com", "correct-horse-battery")

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email:       "MARIA@example.com",
		Password:    "another-password",
		DisplayName: "Maria Again",
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Login

/*
TestLogin verifies credential validation and session issuance. A wrong
password and an unknown email must both produce the same generic message.
*/
func TestLogin(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "maria@example.com", "correct-horse-battery")

	t.Run("valid credentials issue a session", func(t *testing.T) {
		session, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "Maria@Example.com",
			Password: "correct-horse-battery",
		})

		require.NoError(t, err)
		assert.Equal(t, "access-token-for-"+user.ID, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, user.ID, session.User.ID)

		// The refresh token is tracked by hash, never in plain text.
		owner, err := fixture.sessions.Resolve(context.Background(), sec.HashToken(session.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, user.ID, owner)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "maria@example.com",
			Password: "wrong-password",
		})

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse-battery",
		})

		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

// # Session Rotation

/*
TestRefreshSession_Rotation verifies that refreshing revokes the presented
token and issues a replacement, so a captured token replays exactly zero times.
*/
func TestRefreshSession_Rotation(t *testing.T) {
	fixture := newAuthFixture()
	fixture.register(t, "maria@example.com", "correct-horse-battery")

	first, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	second, err := fixture.service.RefreshSession(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replaying the rotated-out token must fail.
	_, err = fixture.service.RefreshSession(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The replacement still works.
	_, err = fixture.service.RefreshSession(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

/*
TestRefreshSession_InvalidToken verifies that an unknown refresh token is
rejected as unauthorized.
*/
func TestRefreshSession_InvalidToken(t *testing.T) {
	fixture := newAuthFixture()

	_, err := fixture.service.RefreshSession(context.Background(), "never-issued")

	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestLogout verifies the session disappears and that logging out twice is a
harmless no-op.
*/
func TestLogout(t *testing.T) {
	fixture := newAuthFixture()
	fixture.register(t, "maria@example.com", "correct-horse-battery")

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))

	_, err = fixture.service.RefreshSession(context.Background(), session.RefreshToken)
	assert.Error(t, err)

	// Idempotent: a second logout succeeds silently.
	assert.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
}

// # Password Recovery

/*
TestPasswordReset verifies the full forgot-password flow: the token maps
back to the account, the new password takes effect, every session is revoked,
and the token is single-use.
*/
func TestPasswordReset(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "maria@example.com", "old-password-123")

	// Two live sessions before the reset.
	for range 2 {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "maria@example.com",
			Password: "old-password-123",
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, fixture.sessions.countFor(user.ID))

	token, err := fixture.service.RequestPasswordReset(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, fixture.service.ResetPassword(context.Background(), token, "new-password-456"))

	// All sessions revoked, old password dead, new password live.
	assert.Zero(t, fixture.sessions.countFor(user.ID))

	_, err = fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "maria@example.com",
		Password: "old-password-123",
	})
	assert.Error(t, err)

	_, err = fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "maria@example.com",
		Password: "new-password-456",
	})
	assert.NoError(t, err)

	// The token is consumed.
	err = fixture.service.ResetPassword(context.Background(), token, "third-password")
	assert.Error(t, err)
}

/*
TestRequestPasswordReset_UnknownEmail verifies the flow stays silent for
unregistered addresses so attackers cannot enumerate accounts.
*/
func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	fixture := newAuthFixture()

	token, err := fixture.service.RequestPasswordReset(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Empty(t, token)
}

/*
TestChangePassword verifies the current password is demanded before the
change and that every device is logged out afterwards.
*/
func TestChangePassword(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "maria@example.com", "old-password-123")

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "maria@example.com",
		Password: "old-password-123",
	})
	require.NoError(t, err)

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := fixture.service.ChangePassword(context.Background(), user.ID, "not-the-password", "new-password-456")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("success revokes every session", func(t *testing.T) {
		require.NoError(t, fixture.service.ChangePassword(context.Background(), user.ID, "old-password-123", "new-password-456"))

		assert.Zero(t, fixture.sessions.countFor(user.ID))

		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "maria@example.com",
			Password: "new-password-456",
		})
		assert.NoError(t, err)
	})
}

// # Account Lifecycle

/*
TestDeactivateAccount verifies the password re-check, that the account stops
resolving afterwards, and that all sessions are revoked.
*/
func TestDeactivateAccount(t *testing.T) {
	fixture := newAuthFixture()
	user := fixture.register(t, "maria@example.com", "correct-horse-battery")

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	t.Run("wrong password is rejected", func(t *testing.T) {
		err := fixture.service.DeactivateAccount(context.Background(), user.ID, "wrong-password")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("deactivation disables login and sessions", func(t *testing.T) {
		require.NoError(t, fixture.service.DeactivateAccount(context.Background(), user.ID, "correct-horse-battery"))

		assert.Zero(t, fixture.sessions.countFor(user.ID))

		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Email:    "maria@example.com",
			Password: "correct-horse-battery",
		})
		assert.Error(t, err)

		_, err = fixture.service.CurrentUser(context.Background(), user.ID)
		assert.Error(t, err)
	})
}
