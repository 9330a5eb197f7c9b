package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
)

// ProgressRepo implements ProgressRepository using PostgreSQL.
type ProgressRepo struct{ db *DB }

// NewProgressRepo constructs a progress repository.
func NewProgressRepo(db *DB) *ProgressRepo { return &ProgressRepo{db: db} }

// Get selects the progress record for one user.
func (r *ProgressRepo) Get(ctx context.Context, userIdentifier string) (*model.ProgressRecord, error) {
	const q = `
SELECT user_identifier, progress, current_level, current_week, current_audio, updated_at
FROM user_progress WHERE user_identifier=$1`
	row := r.db.Pool.QueryRow(ctx, q, userIdentifier)
	var rec model.ProgressRecord
	if err := row.Scan(&rec.UserIdentifier, &rec.Progress, &rec.CurrentLevel,
		&rec.CurrentWeek, &rec.CurrentAudio, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert replaces or inserts the full record in a single atomic statement.
// The client always resends the whole progress object, so every column is
// overwritten rather than merged.
func (r *ProgressRepo) Upsert(ctx context.Context, rec *model.ProgressRecord) error {
	const q = `
INSERT INTO user_progress (user_identifier, progress, current_level, current_week, current_audio, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_identifier) DO UPDATE SET
	progress = EXCLUDED.progress,
	current_level = EXCLUDED.current_level,
	current_week = EXCLUDED.current_week,
	current_audio = EXCLUDED.current_audio,
	updated_at = EXCLUDED.updated_at`
	_, err := r.db.Pool.Exec(ctx, q, rec.UserIdentifier, rec.Progress,
		rec.CurrentLevel, rec.CurrentWeek, rec.CurrentAudio, rec.UpdatedAt)
	return err
}

// Delete removes the record and reports whether one existed.
func (r *ProgressRepo) Delete(ctx context.Context, userIdentifier string) (bool, error) {
	const q = `DELETE FROM user_progress WHERE user_identifier=$1`
	tag, err := r.db.Pool.Exec(ctx, q, userIdentifier)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
