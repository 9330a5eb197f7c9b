// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/godslighthouse/gsp-server/internal/model"
)

// UserRepository provides access to user account records keyed by identifier.
type UserRepository interface {
	// Create inserts a new user; errs.ErrAlreadyExists if the identifier is taken.
	Create(ctx context.Context, u *model.User) error
	// GetByIdentifier loads a user; errs.ErrNotFound when absent.
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	// UpdatePasswordHash replaces the stored hash; errs.ErrNotFound when absent.
	UpdatePasswordHash(ctx context.Context, identifier, hash string) error
}

// AccountPurger removes every record belonging to one identifier.
type AccountPurger interface {
	// Purge deletes the user plus its progress and notes records in one transaction.
	Purge(ctx context.Context, identifier string) error
}
