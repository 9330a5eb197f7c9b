package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
)

func TestProgressRepo_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepo(db)
	ctx := context.Background()

	audio := "audio_001"
	rec := &model.ProgressRecord{
		UserIdentifier: "user@example.com",
		Progress:       model.Document{"week1": map[string]any{"done": true}},
		CurrentLevel:   "level1",
		CurrentWeek:    1,
		CurrentAudio:   &audio,
		UpdatedAt:      "2026-01-28T12:00:00",
	}

	mock.ExpectExec(`INSERT INTO user_progress .+ ON CONFLICT \(user_identifier\) DO UPDATE SET`).
		WithArgs(rec.UserIdentifier, rec.Progress, rec.CurrentLevel, rec.CurrentWeek, rec.CurrentAudio, rec.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Upsert(ctx, rec))
}

func TestProgressRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepo(db)
	ctx := context.Background()

	audio := "audio_001"
	cols := []string{"user_identifier", "progress", "current_level", "current_week", "current_audio", "updated_at"}
	mock.ExpectQuery(`SELECT user_identifier, progress, current_level, current_week, current_audio, updated_at FROM user_progress WHERE user_identifier=\$1`).
		WithArgs("user@example.com").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("user@example.com", model.Document{"week1": "done"}, "level1", 1, &audio, "2026-01-28T12:00:00"))
	rec, err := r.Get(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "level1", rec.CurrentLevel)
	require.Equal(t, model.Document{"week1": "done"}, rec.Progress)
	require.NotNil(t, rec.CurrentAudio)
	require.Equal(t, "audio_001", *rec.CurrentAudio)

	mock.ExpectQuery(`SELECT user_identifier, progress, current_level, current_week, current_audio, updated_at FROM user_progress WHERE user_identifier=\$1`).
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, "missing@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProgressRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProgressRepo(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM user_progress WHERE user_identifier=\$1`).
		WithArgs("user@example.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	deleted, err := r.Delete(ctx, "user@example.com")
	require.NoError(t, err)
	require.True(t, deleted)

	mock.ExpectExec(`DELETE FROM user_progress WHERE user_identifier=\$1`).
		WithArgs("missing@example.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	deleted, err = r.Delete(ctx, "missing@example.com")
	require.NoError(t, err)
	require.False(t, deleted)
}
