// Package httpserver exposes the sync API over HTTP+JSON.
//
// Auth enforcement is deliberately uneven: only /api/auth/verify and
// /api/auth/refresh require a bearer token, while the progress and notes
// routes trust the client-supplied identifier. The shipped mobile/web
// clients send no token on those routes, so the gap is preserved here
// rather than silently tightened.
package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/godslighthouse/gsp-server/internal/service"
	"github.com/godslighthouse/gsp-server/internal/token"
)

const serverVersion = "1.0.0"

// Server wires services into HTTP handlers.
type Server struct {
	auth        service.AuthService
	sync        service.SyncService
	stats       service.StatsService
	tokens      *token.Service
	log         *zap.Logger
	corsOrigins []string
}

// New constructs a Server with injected services.
func New(auth service.AuthService, syncSvc service.SyncService, stats service.StatsService,
	tokens *token.Service, log *zap.Logger, corsOrigins []string) *Server {
	return &Server{
		auth:        auth,
		sync:        syncSvc,
		stats:       stats,
		tokens:      tokens,
		log:         log,
		corsOrigins: corsOrigins,
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/verify", s.handleVerify).Methods(http.MethodGet)
	auth.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	auth.HandleFunc("/change-password", s.handleChangePassword).Methods(http.MethodPost)
	auth.HandleFunc("/delete-account", s.handleDeleteAccount).Methods(http.MethodDelete)

	progress := r.PathPrefix("/api/progress").Subrouter()
	progress.HandleFunc("/upload", s.handleUploadProgress).Methods(http.MethodPost)
	progress.HandleFunc("/download/{user_identifier}", s.handleDownloadProgress).Methods(http.MethodGet)
	progress.HandleFunc("/reset/{user_identifier}", s.handleResetProgress).Methods(http.MethodDelete)

	notes := r.PathPrefix("/api/notes").Subrouter()
	notes.HandleFunc("/backup", s.handleBackupNotes).Methods(http.MethodPost)
	notes.HandleFunc("/retrieve/{user_identifier}", s.handleRetrieveNotes).Methods(http.MethodGet)
	notes.HandleFunc("/delete/{user_identifier}/{audio_id}", s.handleDeleteNote).Methods(http.MethodDelete)

	r.HandleFunc("/api/user/profile/{user_identifier}", s.handleProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/stats/{user_identifier}", s.handleStats).Methods(http.MethodGet)

	// CORS sits outside the router so preflights never 404.
	var h http.Handler = r
	h = recoverPanic(s.log)(h)
	h = requestLogging(s.log)(h)
	h = cors(s.corsOrigins)(h)
	return h
}

// handleRoot returns the service banner.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello Godslighthouse Starter Kit Server",
		"version": serverVersion,
	})
}
