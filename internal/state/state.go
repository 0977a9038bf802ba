// Package state persists the profile set and the shared schedule in the flat
// key/value file, one "key,value" pair per line.
//
// The file is read once at startup and written once at shutdown. Reading never
// fails hard: a missing or unreadable file yields defaults, and malformed lines
// or unknown keys are skipped.
package state

import (
	"slices"
	"time"

	"git.home.luguber.info/inful/filesync/internal/profile"
)

// DefaultIntervalMinutes applies when the file has no usable interval.
const DefaultIntervalMinutes = 15

// Schedule is the process-wide auto-sync configuration.
type Schedule struct {
	IntervalMinutes int
	// AutoSync is session state only and never written to the file.
	AutoSync bool
}

// ClampInterval bounds an interval to at least one minute.
func ClampInterval(minutes int) int {
	return max(1, minutes)
}

// Interval returns the clamped interval as a duration.
func (s Schedule) Interval() time.Duration {
	return time.Duration(ClampInterval(s.IntervalMinutes)) * time.Minute
}

// State is the canonical content of the key/value file.
type State struct {
	Schedule Schedule
	Profiles [profile.MaxProfiles]profile.Snapshot
}

// Default returns the state used when nothing is stored.
func Default() State {
	return State{Schedule: Schedule{IntervalMinutes: DefaultIntervalMinutes}}
}

// FromSet captures the current profiles and schedule for saving.
func FromSet(set *profile.Set, sched Schedule) State {
	st := State{Schedule: sched}
	st.Schedule.IntervalMinutes = ClampInterval(sched.IntervalMinutes)
	for i, snap := range set.Snapshots() {
		if i >= profile.MaxProfiles {
			break
		}
		st.Profiles[i] = snap
	}
	return st
}

// Set builds a profile set of n profiles from the stored snapshots.
func (s State) Set(n int) *profile.Set {
	return profile.NewSetFrom(n, s.Profiles[:])
}

// Equal reports whether two states persist identically.
func (s State) Equal(o State) bool {
	if ClampInterval(s.Schedule.IntervalMinutes) != ClampInterval(o.Schedule.IntervalMinutes) {
		return false
	}
	for i := range s.Profiles {
		if s.Profiles[i].Source != o.Profiles[i].Source {
			return false
		}
		if !slices.Equal(s.Profiles[i].Destinations, o.Profiles[i].Destinations) {
			return false
		}
	}
	return true
}
