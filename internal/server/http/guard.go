package httpserver

import (
	"net/http"
	"strings"
)

// bearerSubject extracts the bearer token from the Authorization header and
// validates it, returning the authenticated subject. On any failure it writes
// the 401 response itself and returns ok=false. The scheme match is
// case-insensitive; the header must be exactly "<scheme> <token>".
func (s *Server) bearerSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		writeDetail(w, http.StatusUnauthorized, "Authorization header required")
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		writeDetail(w, http.StatusUnauthorized, "Invalid authorization header format")
		return "", false
	}
	if !strings.EqualFold(parts[0], "bearer") {
		writeDetail(w, http.StatusUnauthorized, "Invalid authentication scheme")
		return "", false
	}
	subject, err := s.tokens.Decode(parts[1])
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return "", false
	}
	return subject, true
}
