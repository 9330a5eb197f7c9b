package repository

import (
	"context"

	"github.com/godslighthouse/gsp-server/internal/model"
)

// NotesRepository stores at most one notes record per user.
type NotesRepository interface {
	// Get returns the record for the identifier; errs.ErrNotFound when absent.
	Get(ctx context.Context, userIdentifier string) (*model.NotesRecord, error)
	// Upsert atomically replaces or inserts the full record.
	Upsert(ctx context.Context, rec *model.NotesRecord) error
	// RemoveNote unsets one audio_id key from the notes mapping without touching
	// siblings or updated_at. The returned flag reports whether a record matched
	// the identifier at all, even when the key itself was already absent.
	RemoveNote(ctx context.Context, userIdentifier, audioID string) (bool, error)
}
