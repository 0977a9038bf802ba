package metrics

import "time"

// PassOutcome enumerates how a full sync pass ended.
type PassOutcome string

const (
	// OutcomeSuccess means every attempted copy succeeded and at least one ran.
	OutcomeSuccess PassOutcome = "success"
	// OutcomePartial means some copies failed.
	OutcomePartial PassOutcome = "partial"
	// OutcomeFailed means copies were attempted and none succeeded.
	OutcomeFailed PassOutcome = "failed"
	// OutcomeEmpty means nothing was attempted.
	OutcomeEmpty PassOutcome = "empty"
)

// Recorder defines observability hooks for sync passes and copies. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for nil receivers
// when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObservePassDuration(trigger string, d time.Duration)
	IncPassOutcome(trigger string, outcome PassOutcome)
	IncCopyResult(profileID int, success bool)
	IncProfileSkipped(profileID int, reason string)
	SetAutoSyncActive(active bool)
	SetLastPassCounts(attempted, copied int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(string, time.Duration) {}
func (NoopRecorder) IncPassOutcome(string, PassOutcome)        {}
func (NoopRecorder) IncCopyResult(int, bool)                   {}
func (NoopRecorder) IncProfileSkipped(int, string)             {}
func (NoopRecorder) SetAutoSyncActive(bool)                    {}
func (NoopRecorder) SetLastPassCounts(int, int)                {}

// ClassifyPass derives the pass outcome from its totals.
func ClassifyPass(attempted, copied int) PassOutcome {
	switch {
	case attempted == 0:
		return OutcomeEmpty
	case copied == attempted:
		return OutcomeSuccess
	case copied == 0:
		return OutcomeFailed
	default:
		return OutcomePartial
	}
}
