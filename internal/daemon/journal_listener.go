package daemon

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/filesync/internal/journal"
	"git.home.luguber.info/inful/filesync/internal/logfields"
)

const journalWriteTimeout = 5 * time.Second

// Record converts the summary to a journal entry.
func (s Summary) Record() journal.Record {
	rec := journal.Record{
		PassID:     s.PassID,
		Trigger:    string(s.Trigger),
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Attempted:  s.Attempted,
		Copied:     s.Copied,
		Profiles:   make([]journal.ProfileRecord, 0, len(s.Outcomes)),
	}
	for _, o := range s.Outcomes {
		rec.Profiles = append(rec.Profiles, journal.ProfileRecord{
			ProfileID: o.ProfileID,
			Attempted: o.Attempted,
			Copied:    o.Copied,
			Skipped:   o.Skipped,
		})
	}
	return rec
}

// JournalListener returns a pass listener that appends to store. Write
// failures are logged; they never affect the pass.
func JournalListener(store journal.Store) func(Summary) {
	return func(s Summary) {
		if store == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
		defer cancel()
		if err := store.Append(ctx, s.Record()); err != nil {
			slog.Warn("Failed to journal sync pass",
				logfields.PassID(s.PassID),
				logfields.Error(err))
		}
	}
}
