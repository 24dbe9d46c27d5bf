package auth

import (
	"context"
	"errors"

	"github.com/tmoore/bookmarkd/internal/store"
)

// ErrBadCredentials is returned by Login for both an unknown email and a
// wrong password. The two cases are indistinguishable to the caller so that
// responses do not leak which emails are registered.
var ErrBadCredentials = errors.New("invalid credentials")

// Service registers accounts and exchanges credentials for tokens.
type Service struct {
	users  *store.UserStore
	tokens *JWT
}

func NewService(users *store.UserStore, tokens *JWT) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register hashes the password and creates the account. The store's
// ErrDuplicate passes through when the username or email is taken.
func (s *Service) Register(ctx context.Context, username, email, password string) (*store.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, username, email, hash)
}

// Login verifies email and password and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", ErrBadCredentials
	}
	return s.tokens.Issue(user.ID)
}
