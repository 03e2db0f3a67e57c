package domain

import (
	"context"
	"time"
)

// PropertyRequest carries the attributes of a property to describe. All fields
// are free-form text passed through to the generator; only PropertyType and
// Location are required, the rest may be empty.
type PropertyRequest struct {
	PropertyType string
	Rooms        string
	Bathrooms    string
	Size         string
	Location     string
	Features     string
	Style        string
}

// Source identifies where a generated description came from.
type Source string

const (
	// SourceRemote marks descriptions produced by the remote generation API.
	SourceRemote Source = "remote"
	// SourceFallback marks descriptions synthesized locally from templates.
	SourceFallback Source = "fallback"
)

// HistoryLimit is the maximum number of history entries kept per user.
// Appending beyond the limit evicts the oldest entries.
const HistoryLimit = 50

// HistoryEntry records one completed generation. Entries are immutable once
// written and ordered most-recent-first by their monotonic ID.
type HistoryEntry struct {
	ID     int64
	UserID int64
	PropertyRequest
	Description string
	CreatedAt   time.Time
}

// HistoryRepository defines persistence operations for the generation history.
type HistoryRepository interface {
	// Append stores the entry, assigns its ID and CreatedAt, and evicts the
	// oldest entries of the same user beyond HistoryLimit.
	Append(ctx context.Context, entry *HistoryEntry) error
	// ListByUser returns the user's entries, most recent first.
	ListByUser(ctx context.Context, userID int64) ([]HistoryEntry, error)
	// GetByID returns the entry if it exists and belongs to the user,
	// ErrNotFound otherwise.
	GetByID(ctx context.Context, userID, id int64) (*HistoryEntry, error)
}

// GenerationOutcome is the result of a successful generation request.
// It is returned to the caller and never persisted.
type GenerationOutcome struct {
	Description string
	Source      Source
	CreditsLeft int
	Entry       *HistoryEntry
}
