// Package model defines domain entities used by services and repositories.
package model

import "time"

// Document is a schemaless JSON object supplied by the client and stored opaquely.
// The server never inspects its shape beyond counting keys for stats.
type Document map[string]any

// User represents an account record. The password is kept only as a bcrypt hash.
type User struct {
	Identifier   string    // phone number or email, primary key
	PasswordHash string    // bcrypt hash, never returned to clients
	CreatedAt    time.Time // maintained by the store
}

// ProgressRecord is the full learning state for one user. Uploads replace the
// whole record (last-writer-wins); there is no field-level merge.
type ProgressRecord struct {
	UserIdentifier string
	Progress       Document // entire client progress object
	CurrentLevel   string
	CurrentWeek    int
	CurrentAudio   *string // nil when the client is not mid-track
	UpdatedAt      string  // client-supplied ISO-8601 string, stored verbatim
}

// NotesRecord holds all of a user's audio notes keyed by audio track id.
// Backups replace the whole mapping; deleting one note removes a single key.
type NotesRecord struct {
	UserIdentifier string
	Notes          Document // audio_id -> note text
	UpdatedAt      string   // client-supplied ISO-8601 string, stored verbatim
}

// Stats aggregates progress and notes for one user. Zero values when absent.
type Stats struct {
	HasProgress  bool
	CurrentLevel string
	CurrentWeek  int
	NotesCount   int
	LastUpdated  string
}
