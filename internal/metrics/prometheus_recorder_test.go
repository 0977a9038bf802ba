package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePassDuration("manual", 150*time.Millisecond)
	pr.IncPassOutcome("manual", OutcomePartial)
	pr.IncCopyResult(1, true)
	pr.IncCopyResult(1, true)
	pr.IncCopyResult(2, false)
	pr.IncProfileSkipped(3, "no_source")
	pr.SetAutoSyncActive(true)
	pr.SetLastPassCounts(3, 2)

	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}

	if v := testutil.ToFloat64(pr.copyResults.WithLabelValues("1", "success")); v != 2 {
		t.Errorf("copy success for profile 1 = %v, want 2", v)
	}
	if v := testutil.ToFloat64(pr.copyResults.WithLabelValues("2", "failed")); v != 1 {
		t.Errorf("copy failures for profile 2 = %v, want 1", v)
	}
	if v := testutil.ToFloat64(pr.autoSync); v != 1 {
		t.Errorf("auto sync gauge = %v, want 1", v)
	}
	pr.SetAutoSyncActive(false)
	if v := testutil.ToFloat64(pr.autoSync); v != 0 {
		t.Errorf("auto sync gauge = %v, want 0", v)
	}
	if v := testutil.ToFloat64(pr.lastCopied); v != 2 {
		t.Errorf("last copied = %v, want 2", v)
	}
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObservePassDuration("manual", time.Second)
	pr.IncCopyResult(1, true)
	pr.SetAutoSyncActive(true)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncPassOutcome("scheduled", OutcomeSuccess)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(buf.String(), "filesync_pass_outcomes_total") {
		t.Fatalf("metrics output missing pass counter:\n%s", buf.String())
	}
}
