package syncer

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
)

// PreviewLimit is the number of characters shown before truncation.
const PreviewLimit = 2000

const truncatedSuffix = "... (truncated)"

// DestinationInfo describes the copy of a source inside one destination directory.
type DestinationInfo struct {
	Target   string
	Exists   bool
	Modified time.Time
	Preview  string
}

// Inspect reports on <destDir>/<base(source)>. A missing target is not an error.
func (e *Executor) Inspect(source, destDir string) (DestinationInfo, error) {
	if source == "" {
		return DestinationInfo{}, ferrors.ValidationFailed("source", "profile has no source")
	}
	target := filepath.Join(destDir, filepath.Base(source))
	info := DestinationInfo{Target: target}
	if abs, err := filepath.Abs(target); err == nil {
		info.Target = abs
	}

	st, err := e.fs.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return info, nil
		}
		return info, ferrors.InspectFailed(target, err)
	}
	info.Exists = true
	info.Modified = st.ModTime()

	data, err := afero.ReadFile(e.fs, target)
	if err != nil {
		return info, ferrors.InspectFailed(target, err)
	}
	info.Preview = preview(string(data))
	return info, nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= PreviewLimit {
		return s
	}
	n := 0
	for i := range s {
		if n == PreviewLimit {
			return s[:i] + truncatedSuffix
		}
		n++
	}
	return s
}
