package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/filesync/internal/daemon"
	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/journal"
	"git.home.luguber.info/inful/filesync/internal/logfields"
	"git.home.luguber.info/inful/filesync/internal/metrics"
	"git.home.luguber.info/inful/filesync/internal/syncer"
)

// engine bundles the coordinator with its optional journal and metrics.
type engine struct {
	coord    *daemon.Coordinator
	journal  journal.Store
	registry *prom.Registry
}

func newEngine(sess *session) (*engine, error) {
	e := &engine{registry: prom.NewRegistry()}
	rec := metrics.NewPrometheusRecorder(e.registry)

	exec := syncer.NewExecutor(nil).WithRecorder(rec)
	coord, err := daemon.NewCoordinator(sess.set, exec,
		daemon.WithRecorder(rec),
		daemon.WithInterval(sess.schedule.IntervalMinutes),
	)
	if err != nil {
		return nil, err
	}
	e.coord = coord

	if sess.settings.Journal.Enabled {
		store, err := openJournal(sess.settings.JournalPath())
		if err != nil {
			slog.Warn("Pass journal unavailable", logfields.Error(err))
		} else {
			e.journal = store
			coord.OnPass(daemon.JournalListener(store))
		}
	}
	return e, nil
}

func openJournal(path string) (*journal.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ferrors.JournalFailed("open", err).WithContext("path", path)
	}
	store, err := journal.NewSQLiteStore(path)
	if err != nil {
		return nil, ferrors.JournalFailed("open", err).WithContext("path", path)
	}
	return store, nil
}

func (e *engine) close(ctx context.Context) error {
	err := e.coord.Close(ctx)
	if e.journal != nil {
		if jerr := e.journal.Close(); jerr != nil {
			slog.Warn("Failed to close journal", logfields.Error(jerr))
		}
	}
	return err
}
