package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
)

// NotesRepo implements NotesRepository using PostgreSQL.
type NotesRepo struct{ db *DB }

// NewNotesRepo constructs a notes repository.
func NewNotesRepo(db *DB) *NotesRepo { return &NotesRepo{db: db} }

// Get selects the notes record for one user.
func (r *NotesRepo) Get(ctx context.Context, userIdentifier string) (*model.NotesRecord, error) {
	const q = `
SELECT user_identifier, notes, updated_at
FROM user_notes WHERE user_identifier=$1`
	row := r.db.Pool.QueryRow(ctx, q, userIdentifier)
	var rec model.NotesRecord
	if err := row.Scan(&rec.UserIdentifier, &rec.Notes, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert replaces or inserts the full notes mapping in a single atomic statement.
func (r *NotesRepo) Upsert(ctx context.Context, rec *model.NotesRecord) error {
	const q = `
INSERT INTO user_notes (user_identifier, notes, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_identifier) DO UPDATE SET
	notes = EXCLUDED.notes,
	updated_at = EXCLUDED.updated_at`
	_, err := r.db.Pool.Exec(ctx, q, rec.UserIdentifier, rec.Notes, rec.UpdatedAt)
	return err
}

// RemoveNote unsets one key from the notes mapping. The row is matched by
// identifier alone, so removing an already-absent key still reports true
// as long as the user's notes record exists.
func (r *NotesRepo) RemoveNote(ctx context.Context, userIdentifier, audioID string) (bool, error) {
	const q = `
UPDATE user_notes SET notes = notes - $2 WHERE user_identifier = $1`
	tag, err := r.db.Pool.Exec(ctx, q, userIdentifier, audioID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
