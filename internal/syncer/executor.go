// Package syncer copies a profile's source file into each of its destination
// directories. Copies are blind overwrites: no hashing, no conflict checks.
package syncer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/logfields"
	"git.home.luguber.info/inful/filesync/internal/metrics"
	"git.home.luguber.info/inful/filesync/internal/profile"
)

// Skip reasons reported on an Outcome when the source is unusable.
const (
	SkipNoSource      = "no_source"
	SkipSourceMissing = "source_missing"
)

// Outcome is the result of syncing one profile.
type Outcome struct {
	ProfileID int `json:"profile_id"`
	Attempted int `json:"attempted"`
	Copied    int `json:"copied"`
	// Skipped is set when the profile was not attempted at all.
	Skipped string `json:"skipped,omitempty"`
}

// Failed returns the number of destinations that could not be written.
func (o Outcome) Failed() int { return o.Attempted - o.Copied }

// Executor performs the copies for one profile at a time.
type Executor struct {
	fs       afero.Fs
	recorder metrics.Recorder
}

// NewExecutor returns an executor on fsys, or the OS filesystem when fsys is nil.
func NewExecutor(fsys afero.Fs) *Executor {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Executor{fs: fsys, recorder: metrics.NoopRecorder{}}
}

// WithRecorder attaches a metrics recorder.
func (e *Executor) WithRecorder(r metrics.Recorder) *Executor {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	e.recorder = r
	return e
}

// Sync copies the snapshot's source into every destination in order. Per
// destination failures are logged and counted; they never stop the loop.
func (e *Executor) Sync(id int, p profile.Snapshot) Outcome {
	out := Outcome{ProfileID: id}

	if p.Source == "" {
		slog.Warn("Profile has no source, skipping", logfields.ProfileID(id))
		out.Skipped = SkipNoSource
		e.recorder.IncProfileSkipped(id, SkipNoSource)
		return out
	}
	info, err := e.fs.Stat(p.Source)
	if err != nil || !info.Mode().IsRegular() {
		if err == nil {
			err = errors.New("not a regular file")
		}
		serr := ferrors.SourceUnavailable(p.Source, err)
		slog.Warn("Source unavailable, skipping profile",
			logfields.ProfileID(id), logfields.Source(p.Source), logfields.Error(serr))
		out.Skipped = SkipSourceMissing
		e.recorder.IncProfileSkipped(id, SkipSourceMissing)
		return out
	}

	base := filepath.Base(p.Source)
	for _, dest := range p.Destinations {
		out.Attempted++
		if err := e.copyTo(p.Source, info.Mode().Perm(), dest, base); err != nil {
			derr := ferrors.DestinationFailed(dest, err)
			slog.Warn("Copy failed",
				logfields.ProfileID(id), logfields.Source(p.Source),
				logfields.Destination(dest), logfields.Error(derr))
			e.recorder.IncCopyResult(id, false)
			continue
		}
		out.Copied++
		e.recorder.IncCopyResult(id, true)
	}

	slog.Info("Profile synced",
		logfields.ProfileID(id),
		logfields.Attempted(out.Attempted),
		logfields.Copied(out.Copied),
		logfields.Failed(out.Failed()))
	return out
}

func (e *Executor) copyTo(src string, perm os.FileMode, dest, base string) error {
	if err := e.fs.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	target := filepath.Join(dest, base)
	if samePath(src, target) {
		slog.Debug("Destination is the source itself, nothing to copy", logfields.Target(target))
		return nil
	}

	in, err := e.fs.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := e.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("write target: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close target: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
