package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	passes  map[PassOutcome]int
	copies  map[bool]int
	skipped map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{passes: map[PassOutcome]int{}, copies: map[bool]int{}, skipped: map[string]int{}}
}

func (t *testRecorder) ObservePassDuration(string, time.Duration)      {}
func (t *testRecorder) IncPassOutcome(_ string, outcome PassOutcome)   { t.passes[outcome]++ }
func (t *testRecorder) IncCopyResult(_ int, success bool)              { t.copies[success]++ }
func (t *testRecorder) IncProfileSkipped(_ int, reason string)         { t.skipped[reason]++ }
func (t *testRecorder) SetAutoSyncActive(bool)                         {}
func (t *testRecorder) SetLastPassCounts(int, int)                     {}

func TestRecorderInterfaceCompliance(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var _ Recorder = newTestRecorder()
}

func TestClassifyPass(t *testing.T) {
	cases := []struct {
		attempted, copied int
		want              PassOutcome
	}{
		{0, 0, OutcomeEmpty},
		{2, 2, OutcomeSuccess},
		{2, 0, OutcomeFailed},
		{3, 1, OutcomePartial},
	}
	for _, c := range cases {
		if got := ClassifyPass(c.attempted, c.copied); got != c.want {
			t.Errorf("ClassifyPass(%d, %d) = %s, want %s", c.attempted, c.copied, got, c.want)
		}
	}

	r := newTestRecorder()
	r.IncPassOutcome("manual", ClassifyPass(3, 1))
	if r.passes[OutcomePartial] != 1 {
		t.Errorf("expected one partial pass, got %v", r.passes)
	}
}
