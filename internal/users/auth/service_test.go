// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/internal/users/auth"
)

// # In-Memory Doubles

type memoryUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*auth.User{}}
}

func (m *memoryUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	user, found := m.users[id]
	if !found {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUserRepository) Create(ctx context.Context, user *auth.User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUserRepository) Update(ctx context.Context, user *auth.User) error {
	stored, found := m.users[user.ID]
	if !found {
		return apperr.NotFound("User")
	}

	// Mirror the SQL statement: profile fields only, never the hash.
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.ImageURL = user.ImageURL
	stored.Headline = user.Headline
	stored.Location = user.Location
	stored.LinkedIn = user.LinkedIn
	return nil
}

func (m *memoryUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	stored, found := m.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	stored.PasswordHash = newHash
	return nil
}

func (m *memoryUserRepository) Delete(ctx context.Context, id string) error {
	if _, found := m.users[id]; !found {
		return apperr.NotFound("User")
	}
	delete(m.users, id)
	return nil
}

func (m *memoryUserRepository) List(ctx context.Context, limit, offset int) ([]auth.User, int, error) {
	all := make([]auth.User, 0, len(m.users))
	for _, user := range m.users {
		all = append(all, *user)
	}
	return all, len(all), nil
}

type memoryStateStore struct {
	states map[string]time.Time
}

func newMemoryStateStore() *memoryStateStore {
	return &memoryStateStore{states: map[string]time.Time{}}
}

func (m *memoryStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	m.states[state] = time.Now().Add(ttl)
	return nil
}

func (m *memoryStateStore) Take(ctx context.Context, state string) error {
	expiry, found := m.states[state]
	if !found || time.Now().After(expiry) {
		return apperr.NotFound("OAuth state")
	}
	delete(m.states, state)
	return nil
}

// staticTokens mints predictable tokens for assertions.
type staticTokens struct{}

func (staticTokens) GenerateAccessToken(accountID, email, role string) (string, error) {
	return "token-for-" + accountID, nil
}

func newTestService(repo *memoryUserRepository, states auth.OAuthStateStore, provider auth.ProfileProvider) *auth.Service {
	return auth.NewService(repo, states, provider, staticTokens{})
}

// # Registration

/*
TestService_Register verifies that registration stores a bcrypt hash, never
the plaintext, and assigns the member role.
*/
func TestService_Register(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "difference-engine",
	})
	require.NoError(t, err)

	// 1. The stored hash verifies the plaintext but is not the plaintext
	stored := repo.users[user.ID]
	assert.NotEqual(t, "difference-engine", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("difference-engine", stored.PasswordHash))

	// 2. Default role
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.NotEmpty(t, user.ID)
}

/*
TestService_Register_DuplicateEmail verifies the email uniqueness conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)

	input := auth.RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret-password"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

// conflictingUserRepository simulates the losing side of two concurrent
// registrations: the email pre-check sees no account, but the INSERT then
// fires the unique index and the store reports a conflict.
type conflictingUserRepository struct {
	*memoryUserRepository
}

func (c *conflictingUserRepository) Create(ctx context.Context, user *auth.User) error {
	return apperr.Conflict("User already exists")
}

/*
TestService_Register_ConcurrentDuplicate verifies that a registration losing
a race on the email index still surfaces a 409 conflict, not a 500.
*/
func TestService_Register_ConcurrentDuplicate(t *testing.T) {
	repo := &conflictingUserRepository{memoryUserRepository: newMemoryUserRepository()}
	service := auth.NewService(repo, newMemoryStateStore(), nil, staticTokens{})

	_, err := service.Register(context.Background(), auth.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "difference-engine",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

// # Login

func registerTestUser(t *testing.T, service *auth.Service, email, password string) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return user
}

/*
TestService_Login verifies a correct credential pair yields a token bound to
the account.
*/
func TestService_Login(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)
	user := registerTestUser(t, service, "ada@example.com", "difference-engine")

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "ada@example.com",
		Password: "difference-engine",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-"+user.ID, result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)
}

/*
TestService_Login_Indistinguishable verifies that an unknown email, a wrong
password, and a passwordless federated account all produce the identical
error, so login cannot be used to enumerate accounts.
*/
func TestService_Login_Indistinguishable(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)
	registerTestUser(t, service, "ada@example.com", "difference-engine")

	// Federated-only account: no password hash stored
	require.NoError(t, repo.Create(context.Background(), &auth.User{
		ID:    "federated-1",
		Email: "grace@example.com",
		Role:  sec.RoleMember,
	}))

	attempts := []auth.LoginInput{
		{Email: "nobody@example.com", Password: "whatever"},
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "grace@example.com", Password: "any-password"},
	}

	var messages []string
	for _, attempt := range attempts {
		_, err := service.Login(context.Background(), attempt)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 401, appError.HTTPStatus)
		messages = append(messages, appError.Message)
	}

	// One shared message across all three failure modes
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

/*
TestService_VerifyCredentials verifies the middleware-facing credential check
returns an identity snapshot on success.
*/
func TestService_VerifyCredentials(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)
	user := registerTestUser(t, service, "ada@example.com", "difference-engine")

	identity, err := service.VerifyCredentials(context.Background(), "ada@example.com", "difference-engine")
	require.NoError(t, err)

	assert.Equal(t, user.ID, identity.AccountID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, sec.RoleMember, identity.Role)

	_, err = service.VerifyCredentials(context.Background(), "ada@example.com", "nope")
	assert.Error(t, err)
}

/*
TestService_ResolveAccount verifies subject resolution reflects the live
store: a deleted account stops resolving.
*/
func TestService_ResolveAccount(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)
	user := registerTestUser(t, service, "ada@example.com", "difference-engine")

	identity, err := service.ResolveAccount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.AccountID)

	require.NoError(t, repo.Delete(context.Background(), user.ID))

	_, err = service.ResolveAccount(context.Background(), user.ID)
	assert.Error(t, err)
}

// # Password Change

/*
TestService_ChangePassword verifies rotation requires the current password
and that the new one takes effect.
*/
func TestService_ChangePassword(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)
	user := registerTestUser(t, service, "ada@example.com", "old-password-1")

	// 1. Wrong current password is refused
	err := service.ChangePassword(context.Background(), user.ID, "not-the-password", "new-password-2")
	require.Error(t, err)

	// 2. Correct current password rotates the hash
	err = service.ChangePassword(context.Background(), user.ID, "old-password-1", "new-password-2")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Email: "ada@example.com", Password: "old-password-1"})
	assert.Error(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Email: "ada@example.com", Password: "new-password-2"})
	assert.NoError(t, err)
}

/*
TestService_ChangePassword_FederatedAccount verifies a passwordless account
cannot rotate a password it does not have.
*/
func TestService_ChangePassword_FederatedAccount(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), nil)

	require.NoError(t, repo.Create(context.Background(), &auth.User{
		ID:    "federated-1",
		Email: "grace@example.com",
		Role:  sec.RoleMember,
	}))

	err := service.ChangePassword(context.Background(), "federated-1", "", "new-password")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "incorrect") || apperr.IsAppError(err))
}
