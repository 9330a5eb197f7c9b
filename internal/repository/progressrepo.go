package repository

import (
	"context"

	"github.com/godslighthouse/gsp-server/internal/model"
)

// ProgressRepository stores at most one progress record per user.
type ProgressRepository interface {
	// Get returns the record for the identifier; errs.ErrNotFound when absent.
	Get(ctx context.Context, userIdentifier string) (*model.ProgressRecord, error)
	// Upsert atomically replaces or inserts the full record.
	Upsert(ctx context.Context, rec *model.ProgressRecord) error
	// Delete removes the record, reporting whether one existed.
	Delete(ctx context.Context, userIdentifier string) (bool, error)
}
