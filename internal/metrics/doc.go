// Package metrics provides the observability hooks of the sync engine.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	exec := syncer.NewExecutor(fs).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the registry it is given and
// HTTPHandler exposes that registry for scraping.
package metrics
