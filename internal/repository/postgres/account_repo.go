package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// AccountRepo implements AccountPurger using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Purge deletes the user row plus its progress and notes rows. The three
// deletes run in one transaction so a crash cannot leave orphaned records.
func (r *AccountRepo) Purge(ctx context.Context, identifier string) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const delUser = `DELETE FROM users WHERE identifier=$1`
	const delProgress = `DELETE FROM user_progress WHERE user_identifier=$1`
	const delNotes = `DELETE FROM user_notes WHERE user_identifier=$1`

	if _, err = tx.Exec(ctx, delUser, identifier); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, delProgress, identifier); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, delNotes, identifier); err != nil {
		return err
	}
	return nil
}
