package service

import (
	"context"
	"errors"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
	"github.com/godslighthouse/gsp-server/internal/repository"
)

// SyncService defines progress and notes state synchronization.
// Uploads and backups are full-document upserts keyed by identifier:
// last-writer-wins, no merge, idempotent for identical payloads.
type SyncService interface {
	// UploadProgress replaces or inserts the user's entire progress record.
	UploadProgress(ctx context.Context, rec *model.ProgressRecord) error
	// DownloadProgress returns the record; errs.ErrNotFound when absent.
	DownloadProgress(ctx context.Context, userIdentifier string) (*model.ProgressRecord, error)
	// ResetProgress deletes the record; errs.ErrNotFound when none existed.
	ResetProgress(ctx context.Context, userIdentifier string) error
	// BackupNotes replaces or inserts the user's entire notes mapping.
	BackupNotes(ctx context.Context, rec *model.NotesRecord) error
	// RetrieveNotes returns the record; errs.ErrNotFound when absent.
	RetrieveNotes(ctx context.Context, userIdentifier string) (*model.NotesRecord, error)
	// DeleteNote removes one audio_id key. errs.ErrNotFound only when the user
	// has no notes record at all; an unknown audio_id on an existing record
	// succeeds (matched-count semantics).
	DeleteNote(ctx context.Context, userIdentifier, audioID string) error
}

type SyncServiceImpl struct {
	progress repository.ProgressRepository
	notes    repository.NotesRepository
}

// NewSyncService constructs SyncService over the two record repositories.
func NewSyncService(progress repository.ProgressRepository, notes repository.NotesRepository) *SyncServiceImpl {
	return &SyncServiceImpl{progress: progress, notes: notes}
}

// UploadProgress validates the key and delegates the atomic upsert.
func (s *SyncServiceImpl) UploadProgress(ctx context.Context, rec *model.ProgressRecord) error {
	if rec.UserIdentifier == "" {
		return errors.New("validation: empty user identifier")
	}
	return s.progress.Upsert(ctx, rec)
}

// DownloadProgress returns the stored record as-is.
func (s *SyncServiceImpl) DownloadProgress(ctx context.Context, userIdentifier string) (*model.ProgressRecord, error) {
	return s.progress.Get(ctx, userIdentifier)
}

// ResetProgress deletes the progress record.
func (s *SyncServiceImpl) ResetProgress(ctx context.Context, userIdentifier string) error {
	deleted, err := s.progress.Delete(ctx, userIdentifier)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.ErrNotFound
	}
	return nil
}

// BackupNotes validates the key and delegates the atomic upsert.
func (s *SyncServiceImpl) BackupNotes(ctx context.Context, rec *model.NotesRecord) error {
	if rec.UserIdentifier == "" {
		return errors.New("validation: empty user identifier")
	}
	return s.notes.Upsert(ctx, rec)
}

// RetrieveNotes returns the stored record as-is.
func (s *SyncServiceImpl) RetrieveNotes(ctx context.Context, userIdentifier string) (*model.NotesRecord, error) {
	return s.notes.Get(ctx, userIdentifier)
}

// DeleteNote unsets one key from the notes mapping.
func (s *SyncServiceImpl) DeleteNote(ctx context.Context, userIdentifier, audioID string) error {
	matched, err := s.notes.RemoveNote(ctx, userIdentifier, audioID)
	if err != nil {
		return err
	}
	if !matched {
		return errs.ErrNotFound
	}
	return nil
}
