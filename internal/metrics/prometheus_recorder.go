package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	passDuration   *prom.HistogramVec
	passOutcomes   *prom.CounterVec
	copyResults    *prom.CounterVec
	profileSkipped *prom.CounterVec
	autoSync       prom.Gauge
	lastAttempted  prom.Gauge
	lastCopied     prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.passDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "filesync",
			Name:      "pass_duration_seconds",
			Help:      "Duration of full sync passes over all profiles",
			Buckets:   prom.DefBuckets,
		}, []string{"trigger"})
		pr.passOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "filesync",
			Name:      "pass_outcomes_total",
			Help:      "Sync passes by trigger and outcome",
		}, []string{"trigger", "outcome"})
		pr.copyResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "filesync",
			Name:      "copy_results_total",
			Help:      "Destination copies by profile and result",
		}, []string{"profile", "result"})
		pr.profileSkipped = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "filesync",
			Name:      "profile_skipped_total",
			Help:      "Profiles skipped because their source was unusable",
		}, []string{"profile", "reason"})
		pr.autoSync = prom.NewGauge(prom.GaugeOpts{
			Namespace: "filesync",
			Name:      "auto_sync_active",
			Help:      "1 while the periodic trigger is armed",
		})
		pr.lastAttempted = prom.NewGauge(prom.GaugeOpts{
			Namespace: "filesync",
			Name:      "last_pass_attempted",
			Help:      "Copies attempted by the most recent pass",
		})
		pr.lastCopied = prom.NewGauge(prom.GaugeOpts{
			Namespace: "filesync",
			Name:      "last_pass_copied",
			Help:      "Copies that succeeded in the most recent pass",
		})
		reg.MustRegister(pr.passDuration, pr.passOutcomes, pr.copyResults, pr.profileSkipped, pr.autoSync, pr.lastAttempted, pr.lastCopied)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePassDuration(trigger string, d time.Duration) {
	if p == nil || p.passDuration == nil {
		return
	}
	p.passDuration.WithLabelValues(trigger).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPassOutcome(trigger string, outcome PassOutcome) {
	if p == nil || p.passOutcomes == nil {
		return
	}
	p.passOutcomes.WithLabelValues(trigger, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncCopyResult(profileID int, success bool) {
	if p == nil || p.copyResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.copyResults.WithLabelValues(strconv.Itoa(profileID), res).Inc()
}

func (p *PrometheusRecorder) IncProfileSkipped(profileID int, reason string) {
	if p == nil || p.profileSkipped == nil {
		return
	}
	p.profileSkipped.WithLabelValues(strconv.Itoa(profileID), reason).Inc()
}

func (p *PrometheusRecorder) SetAutoSyncActive(active bool) {
	if p == nil || p.autoSync == nil {
		return
	}
	if active {
		p.autoSync.Set(1)
		return
	}
	p.autoSync.Set(0)
}

func (p *PrometheusRecorder) SetLastPassCounts(attempted, copied int) {
	if p == nil || p.lastAttempted == nil {
		return
	}
	p.lastAttempted.Set(float64(attempted))
	p.lastCopied.Set(float64(copied))
}
