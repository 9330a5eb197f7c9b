package service

import (
	"context"
	"errors"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
	"github.com/godslighthouse/gsp-server/internal/repository"
)

// StatsService aggregates progress and notes into a per-user summary.
type StatsService interface {
	// Get queries the two collections independently and returns zero values
	// for whichever records are absent. Missing records are not an error.
	Get(ctx context.Context, userIdentifier string) (*model.Stats, error)
}

type StatsServiceImpl struct {
	progress repository.ProgressRepository
	notes    repository.NotesRepository
}

// NewStatsService constructs StatsService over the two record repositories.
func NewStatsService(progress repository.ProgressRepository, notes repository.NotesRepository) *StatsServiceImpl {
	return &StatsServiceImpl{progress: progress, notes: notes}
}

// Get assembles the stats summary.
func (s *StatsServiceImpl) Get(ctx context.Context, userIdentifier string) (*model.Stats, error) {
	st := &model.Stats{}

	p, err := s.progress.Get(ctx, userIdentifier)
	switch {
	case err == nil:
		st.HasProgress = true
		st.CurrentLevel = p.CurrentLevel
		st.CurrentWeek = p.CurrentWeek
		st.LastUpdated = p.UpdatedAt
	case !errors.Is(err, errs.ErrNotFound):
		return nil, err
	}

	n, err := s.notes.Get(ctx, userIdentifier)
	switch {
	case err == nil:
		st.NotesCount = len(n.Notes)
		if st.LastUpdated == "" {
			st.LastUpdated = n.UpdatedAt
		}
	case !errors.Is(err, errs.ErrNotFound):
		return nil, err
	}

	return st, nil
}
