// Package service contains application services for authentication and state sync.
package service

import (
	"context"
	"errors"
	"fmt"

	pkgcrypto "github.com/godslighthouse/gsp-server/internal/crypto"
	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
	"github.com/godslighthouse/gsp-server/internal/repository"
	"github.com/godslighthouse/gsp-server/internal/token"
)

// AuthService defines account and credential operations.
type AuthService interface {
	// Register creates a new user and returns a session token for it.
	Register(ctx context.Context, identifier, password string) (accessToken string, err error)
	// Login authenticates the user and returns a session token.
	// Unknown identifier and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, identifier, password string) (accessToken string, err error)
	// ChangePassword verifies the old password and replaces the stored hash.
	ChangePassword(ctx context.Context, identifier, oldPassword, newPassword string) error
	// DeleteAccount verifies the password and removes all records for the identifier.
	DeleteAccount(ctx context.Context, identifier, password string) error
	// Profile returns the user record; the password hash never leaves the service.
	Profile(ctx context.Context, identifier string) (*model.User, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	accounts repository.AccountPurger
	tokens   *token.Service
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, accounts repository.AccountPurger, tokens *token.Service) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, accounts: accounts, tokens: tokens}
}

// Register creates a new user record. The identifier is a free-form phone or
// email string, checked only for non-emptiness. Duplicate registration
// surfaces errs.ErrAlreadyExists from the unique constraint, never from a
// read-then-write check.
func (s *AuthServiceImpl) Register(ctx context.Context, identifier, password string) (string, error) {
	if identifier == "" || password == "" {
		return "", errors.New("validation: empty identifier/password")
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{Identifier: identifier, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	access, _, err := s.tokens.Issue(identifier)
	return access, err
}

// Login authenticates by identifier and password.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (string, error) {
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		// hide existence of the user: lookup failure and wrong password
		// collapse into the same error
		return "", errs.ErrUnauthorized
	}
	access, _, err := s.tokens.Issue(identifier)
	return access, err
}

// ChangePassword replaces the stored hash after verifying the old password.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, identifier, oldPassword, newPassword string) error {
	if newPassword == "" {
		return errors.New("validation: empty new password")
	}
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if !pkgcrypto.VerifyPassword(oldPassword, u.PasswordHash) {
		return errs.ErrUnauthorized
	}
	hash, err := pkgcrypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePasswordHash(ctx, identifier, hash)
}

// DeleteAccount verifies the password and purges user, progress, and notes records.
func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, identifier, password string) error {
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return errs.ErrUnauthorized
	}
	return s.accounts.Purge(ctx, identifier)
}

// Profile loads the user record and strips the password hash.
func (s *AuthServiceImpl) Profile(ctx context.Context, identifier string) (*model.User, error) {
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}
