package httpserver

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
)

// progressPayload is both the upload request body and the download data object.
type progressPayload struct {
	UserIdentifier string         `json:"user_identifier"`
	Progress       model.Document `json:"progress"`
	CurrentLevel   string         `json:"current_level"`
	CurrentWeek    int            `json:"current_week"`
	CurrentAudio   *string        `json:"current_audio"`
	UpdatedAt      string         `json:"updated_at"`
}

// notesPayload is both the backup request body and the retrieve data object.
// Message is only set on the empty placeholder for users with no backup yet.
type notesPayload struct {
	UserIdentifier string         `json:"user_identifier"`
	Notes          model.Document `json:"notes"`
	UpdatedAt      string         `json:"updated_at,omitempty"`
	Message        string         `json:"message,omitempty"`
}

type dataResponse struct {
	Status bool `json:"status"`
	Data   any  `json:"data"`
}

// handleUploadProgress replaces the user's whole progress record.
func (s *Server) handleUploadProgress(w http.ResponseWriter, r *http.Request) {
	var req progressPayload
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserIdentifier == "" {
		writeDetail(w, http.StatusBadRequest, "user_identifier is required")
		return
	}
	rec := &model.ProgressRecord{
		UserIdentifier: req.UserIdentifier,
		Progress:       req.Progress,
		CurrentLevel:   req.CurrentLevel,
		CurrentWeek:    req.CurrentWeek,
		CurrentAudio:   req.CurrentAudio,
		UpdatedAt:      req.UpdatedAt,
	}
	if err := s.sync.UploadProgress(r.Context(), rec); err != nil {
		s.log.Error("upload progress", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to upload progress")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: true, Message: "Progress uploaded successfully"})
}

// handleDownloadProgress returns the stored record verbatim.
func (s *Server) handleDownloadProgress(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["user_identifier"]
	rec, err := s.sync.DownloadProgress(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "No progress found for this user")
			return
		}
		s.log.Error("download progress", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to download progress")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Status: true, Data: progressPayload{
		UserIdentifier: rec.UserIdentifier,
		Progress:       rec.Progress,
		CurrentLevel:   rec.CurrentLevel,
		CurrentWeek:    rec.CurrentWeek,
		CurrentAudio:   rec.CurrentAudio,
		UpdatedAt:      rec.UpdatedAt,
	}})
}

// handleResetProgress deletes the user's progress record.
func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["user_identifier"]
	err := s.sync.ResetProgress(r.Context(), identifier)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: true, Message: "Progress reset successfully"})
	case errors.Is(err, errs.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "No progress found for this user")
	default:
		s.log.Error("reset progress", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to reset progress")
	}
}

// handleBackupNotes replaces the user's whole notes mapping.
func (s *Server) handleBackupNotes(w http.ResponseWriter, r *http.Request) {
	var req notesPayload
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserIdentifier == "" {
		writeDetail(w, http.StatusBadRequest, "user_identifier is required")
		return
	}
	rec := &model.NotesRecord{
		UserIdentifier: req.UserIdentifier,
		Notes:          req.Notes,
		UpdatedAt:      req.UpdatedAt,
	}
	if err := s.sync.BackupNotes(r.Context(), rec); err != nil {
		s.log.Error("backup notes", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to backup notes")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: true, Message: "Notes backed up successfully"})
}

// handleRetrieveNotes returns the stored notes, or an explicit empty
// placeholder for users who never backed up. Never a 404.
func (s *Server) handleRetrieveNotes(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["user_identifier"]
	rec, err := s.sync.RetrieveNotes(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeJSON(w, http.StatusOK, dataResponse{Status: true, Data: notesPayload{
				UserIdentifier: identifier,
				Notes:          model.Document{},
				Message:        "No notes found for this user",
			}})
			return
		}
		s.log.Error("retrieve notes", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to retrieve notes")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Status: true, Data: notesPayload{
		UserIdentifier: rec.UserIdentifier,
		Notes:          rec.Notes,
		UpdatedAt:      rec.UpdatedAt,
	}})
}

// handleDeleteNote unsets one audio_id key from the user's notes mapping.
// 404 only when no notes record matches the identifier; deleting an unknown
// key from an existing record succeeds.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := s.sync.DeleteNote(r.Context(), vars["user_identifier"], vars["audio_id"])
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: true, Message: "Note deleted successfully"})
	case errors.Is(err, errs.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "User notes not found")
	default:
		s.log.Error("delete note", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to delete note")
	}
}

// handleProfile returns the user record minus the password hash.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["user_identifier"]
	u, err := s.auth.Profile(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		s.log.Error("profile", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Status: true, Data: map[string]any{
		"phone_or_email": u.Identifier,
		"created_at":     u.CreatedAt,
	}})
}

// handleStats aggregates progress and notes into a per-user summary.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["user_identifier"]
	st, err := s.stats.Get(r.Context(), identifier)
	if err != nil {
		s.log.Error("stats", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Status: true, Data: map[string]any{
		"has_progress":  st.HasProgress,
		"current_level": st.CurrentLevel,
		"current_week":  st.CurrentWeek,
		"notes_count":   st.NotesCount,
		"last_updated":  st.LastUpdated,
	}})
}
