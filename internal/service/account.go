// Package service orchestrates account and expense operations over the
// storage layer.
package service

import (
	"errors"
	"strings"

	"expense-ledger/internal/auth"
	"expense-ledger/internal/storage"
)

// Account errors. Login deliberately returns the same
// ErrInvalidCredentials for an unknown username and a wrong password so
// callers cannot probe which usernames exist.
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrEmptyPassword      = errors.New("password cannot be empty")
)

// AuthState is the session state threaded through account operations.
// Callers own it; the service only flips its fields.
type AuthState struct {
	LoggedIn    bool
	CurrentUser string
}

// AccountService handles signup and login against the credential store.
type AccountService struct {
	users storage.UserStore
	cost  int
}

// NewAccountService creates an account service. cost is the bcrypt cost
// factor; values below bcrypt.MinCost select the default cost.
func NewAccountService(users storage.UserStore, cost int) *AccountService {
	return &AccountService{users: users, cost: cost}
}

// Signup registers a new account. The password is stored only as a
// salted bcrypt hash; the salt is fresh for every call.
func (s *AccountService) Signup(username, password, confirm string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if password == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	users, err := s.users.Load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return ErrUsernameTaken
	}

	hash, err := auth.HashPasswordCost(password, s.cost)
	if err != nil {
		return err
	}
	users[username] = hash
	return s.users.Save(users)
}

// Login verifies the credentials and, on success, marks state as logged
// in for username.
func (s *AccountService) Login(state *AuthState, username, password string) error {
	users, err := s.users.Load()
	if err != nil {
		return err
	}

	hash, ok := users[username]
	if !ok || !auth.CheckPassword(password, hash) {
		return ErrInvalidCredentials
	}

	state.LoggedIn = true
	state.CurrentUser = username
	return nil
}

// Logout clears the session state unconditionally.
func (s *AccountService) Logout(state *AuthState) {
	state.LoggedIn = false
	state.CurrentUser = ""
}
