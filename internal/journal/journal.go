// Package journal keeps an append-only history of sync passes in SQLite.
//
// The journal is an audit trail for the CLI and the status endpoint. It is not
// part of the profile state: the key/value file stays the only source of truth
// for profiles and the schedule.
package journal

import (
	"context"
	"time"
)

// ProfileRecord is the per-profile part of a pass record.
type ProfileRecord struct {
	ProfileID int    `json:"profile_id"`
	Attempted int    `json:"attempted"`
	Copied    int    `json:"copied"`
	Skipped   string `json:"skipped,omitempty"`
}

// Record is one completed sync pass.
type Record struct {
	PassID     string
	Trigger    string
	StartedAt  time.Time
	FinishedAt time.Time
	Attempted  int
	Copied     int
	Profiles   []ProfileRecord
}

// Failed returns the number of failed copies in the pass.
func (r Record) Failed() int { return r.Attempted - r.Copied }

// Store persists and lists pass records.
type Store interface {
	// Append adds a record. Records with an existing pass id are rejected.
	Append(ctx context.Context, rec Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
