package daemon

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/filesync/internal/syncer"
)

// Trigger names what started a sync pass.
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

// Summary aggregates the outcomes of one pass over all profiles.
type Summary struct {
	PassID     string           `json:"pass_id"`
	Trigger    Trigger          `json:"trigger"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Outcomes   []syncer.Outcome `json:"outcomes"`
	Attempted  int              `json:"attempted"`
	Copied     int              `json:"copied"`
}

func newSummary(passID string, trigger Trigger, started, finished time.Time, outcomes []syncer.Outcome) Summary {
	s := Summary{
		PassID:     passID,
		Trigger:    trigger,
		StartedAt:  started,
		FinishedAt: finished,
		Outcomes:   outcomes,
	}
	for _, o := range outcomes {
		s.Attempted += o.Attempted
		s.Copied += o.Copied
	}
	return s
}

// Failed is the number of copies that did not succeed.
func (s Summary) Failed() int { return s.Attempted - s.Copied }

// Duration of the pass.
func (s Summary) Duration() time.Duration { return s.FinishedAt.Sub(s.StartedAt) }

// String renders the status line shown after every pass.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sync finished at %s.", s.FinishedAt.Format(time.TimeOnly))
	for i, o := range s.Outcomes {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "Profile %d: %s", o.ProfileID, outcomeText(o))
	}
	if len(s.Outcomes) > 0 {
		b.WriteString(".")
	}
	fmt.Fprintf(&b, " Success: %d, Errors: %d", s.Copied, s.Failed())
	return b.String()
}

func outcomeText(o syncer.Outcome) string {
	switch o.Skipped {
	case syncer.SkipNoSource:
		return "no source"
	case syncer.SkipSourceMissing:
		return "source missing"
	}
	return fmt.Sprintf("%d/%d", o.Copied, o.Attempted)
}

// PassResult is delivered by SyncAllNowAsync.
type PassResult struct {
	Summary Summary
	Err     error
}
