package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. created_at is set by the database.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (identifier, password_hash)
VALUES ($1, $2)`
	_, err := r.db.Pool.Exec(ctx, q, u.Identifier, u.PasswordHash)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByIdentifier selects a user by identifier.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	const q = `
SELECT identifier, password_hash, created_at
FROM users WHERE identifier=$1`
	row := r.db.Pool.QueryRow(ctx, q, identifier)
	var u model.User
	if err := row.Scan(&u.Identifier, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePasswordHash replaces the stored hash for an existing user.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, identifier, hash string) error {
	const q = `
UPDATE users SET password_hash = $2 WHERE identifier = $1`
	tag, err := r.db.Pool.Exec(ctx, q, identifier, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
