package service

import (
	"os"
	"path/filepath"
	"testing"

	"expense-ledger/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(t *testing.T) (*AccountService, *storage.JSONUserStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	store := storage.NewJSONUserStore(path)
	return NewAccountService(store, bcrypt.MinCost), store, path
}

func TestSignupAndLogin(t *testing.T) {
	accounts, _, _ := newAccountService(t)

	require.NoError(t, accounts.Signup("alice", "pw1", "pw1"))

	// Duplicate username
	err := accounts.Signup("alice", "pw2", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Wrong password
	var state AuthState
	err = accounts.Login(&state, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, state.LoggedIn)

	// Correct password
	require.NoError(t, accounts.Login(&state, "alice", "pw1"))
	assert.True(t, state.LoggedIn)
	assert.Equal(t, "alice", state.CurrentUser)
}

func TestLoginUnknownUserIndistinguishable(t *testing.T) {
	accounts, _, _ := newAccountService(t)
	require.NoError(t, accounts.Signup("alice", "pw1", "pw1"))

	var state AuthState
	unknownErr := accounts.Login(&state, "nobody", "pw1")
	wrongErr := accounts.Login(&state, "alice", "bad")

	// Unknown user and wrong password must be the same outcome
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestSignupValidation(t *testing.T) {
	accounts, _, _ := newAccountService(t)

	assert.ErrorIs(t, accounts.Signup("alice", "pw1", "pw2"), ErrPasswordMismatch)
	assert.ErrorIs(t, accounts.Signup("", "pw1", "pw1"), ErrEmptyUsername)
	assert.ErrorIs(t, accounts.Signup("   ", "pw1", "pw1"), ErrEmptyUsername)
	assert.ErrorIs(t, accounts.Signup("alice", "", ""), ErrEmptyPassword)
}

func TestSignupStoresOnlyHashes(t *testing.T) {
	accounts, store, path := newAccountService(t)
	require.NoError(t, accounts.Signup("alice", "supersecret", "supersecret"))

	users, err := store.Load()
	require.NoError(t, err)
	hash := users["alice"]
	assert.NotEqual(t, "supersecret", hash)
	assert.Contains(t, hash, "$2a$", "expected an encoded bcrypt hash")

	// The raw file must not contain the plaintext either
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "supersecret")
}

func TestSignupFreshSaltPerUser(t *testing.T) {
	accounts, store, _ := newAccountService(t)
	require.NoError(t, accounts.Signup("alice", "shared", "shared"))
	require.NoError(t, accounts.Signup("bob", "shared", "shared"))

	users, err := store.Load()
	require.NoError(t, err)
	assert.NotEqual(t, users["alice"], users["bob"], "same password must hash differently per user")
}

func TestLogout(t *testing.T) {
	accounts, _, _ := newAccountService(t)
	require.NoError(t, accounts.Signup("alice", "pw1", "pw1"))

	var state AuthState
	require.NoError(t, accounts.Login(&state, "alice", "pw1"))
	require.True(t, state.LoggedIn)

	accounts.Logout(&state)
	assert.False(t, state.LoggedIn)
	assert.Empty(t, state.CurrentUser)

	// Logout on a clean state is harmless
	accounts.Logout(&state)
	assert.False(t, state.LoggedIn)
}
