package state

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/logfields"
)

const (
	// DirName and FileName locate the file under the application root.
	DirName  = "config"
	FileName = "config.csv"
)

// PathForRoot returns the key/value file location for an application root.
func PathForRoot(root string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, DirName, FileName)
}

// Store loads and saves State at a fixed path.
type Store struct {
	path string
	fs   afero.Fs
}

// NewStore creates a store backed by the OS filesystem.
func NewStore(path string) *Store {
	return &Store{path: path, fs: afero.NewOsFs()}
}

// WithFs swaps the filesystem, mainly for tests.
func (s *Store) WithFs(fsys afero.Fs) *Store {
	s.fs = fsys
	return s
}

func (s *Store) Path() string { return s.path }

// Load reads the file. A missing file yields defaults and no error. Any other
// read failure yields defaults together with a soft configuration error that
// callers log and otherwise ignore.
func (s *Store) Load() (State, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("State file absent, using defaults", logfields.Path(s.path))
			return Default(), nil
		}
		return Default(), ferrors.ConfigUnreadable(s.path, err)
	}
	defer func() { _ = f.Close() }()

	st, err := Parse(f)
	if err != nil {
		return Default(), ferrors.ConfigUnreadable(s.path, err)
	}
	slog.Debug("State loaded", logfields.Path(s.path), logfields.IntervalMinutes(st.Schedule.IntervalMinutes))
	return st, nil
}

// Save writes the file atomically, creating its directory when missing.
func (s *Store) Save(st State) error {
	var buf bytes.Buffer
	if err := Format(&buf, st); err != nil {
		return ferrors.ConfigWriteFailed(s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return ferrors.ConfigWriteFailed(s.path, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+FileName+".*")
	if err != nil {
		return ferrors.ConfigWriteFailed(s.path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return ferrors.ConfigWriteFailed(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return ferrors.ConfigWriteFailed(s.path, err)
	}
	// TempFile creates 0600; the file holds no secrets.
	_ = s.fs.Chmod(tmpName, 0o644)
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return ferrors.ConfigWriteFailed(s.path, err)
	}

	slog.Debug("State saved", logfields.Path(s.path))
	return nil
}

// Parse reads the key/value format into a canonical State. Lines without a
// comma, unknown keys and non-integer intervals are skipped.
func Parse(r io.Reader) (State, error) {
	st := Default()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key, value, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}
		if key == KeyInterval {
			if n, err := strconv.Atoi(value); err == nil {
				st.Schedule.IntervalMinutes = ClampInterval(n)
			}
			continue
		}
		b, ok := resolveKey(key)
		if !ok {
			continue
		}
		p := &st.Profiles[b.index]
		switch b.field {
		case fieldSource:
			p.Source = value
		case fieldDest:
			p.Destinations = append(p.Destinations, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Default(), fmt.Errorf("scan state: %w", err)
	}
	return st, nil
}

// Format writes State in canonical key order: interval, then per profile its
// source (when set) followed by its destinations.
func Format(w io.Writer, st State) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s,%d\n", KeyInterval, ClampInterval(st.Schedule.IntervalMinutes))
	for i, p := range st.Profiles {
		id := i + 1
		if p.Source != "" {
			fmt.Fprintf(bw, "%s,%s\n", SourceKey(id), p.Source)
		}
		for _, d := range p.Destinations {
			fmt.Fprintf(bw, "%s,%s\n", DestKey(id), d)
		}
	}
	return bw.Flush()
}
