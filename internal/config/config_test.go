package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, filepath.Join(".", "config", "config.csv"), s.StatePath())
	assert.Equal(t, filepath.Join(".", "config", "journal.db"), s.JournalPath())
}

func TestLoad_ParsesAndExpandsEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FILESYNC_TEST_ROOT", "/srv/filesync")
	path := writeConfig(t, `
root: "${FILESYNC_TEST_ROOT}"
profiles: 2
logging:
  level: DEBUG
  format: Json
http:
  listen_addr: ":9464"
journal:
  enabled: false
  path: /var/lib/filesync/history.db
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/filesync", s.Root)
	assert.Equal(t, 2, s.Profiles)
	assert.Equal(t, LogLevelDebug, s.Logging.Level)
	assert.Equal(t, LogFormatJSON, s.Logging.Format)
	assert.Equal(t, ":9464", s.HTTP.ListenAddr)
	assert.False(t, s.Journal.Enabled)
	assert.Equal(t, "/var/lib/filesync/history.db", s.JournalPath())
	assert.Equal(t, "/srv/filesync/config/config.csv", s.StatePath())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load(writeConfig(t, "profiles: 9\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Profiles, "profile count is clamped")
	assert.True(t, s.Journal.Enabled)
	assert.Equal(t, ".", s.Root)
	assert.Equal(t, LogLevelInfo, s.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load(writeConfig(t, "root: [unclosed\n"))
	require.Error(t, err)
	assert.True(t, ferrors.IsCategory(err, ferrors.CategoryConfig))
	assert.True(t, ferrors.IsSoft(err), "a broken settings file is not fatal")
	require.NotNil(t, s)
	assert.Equal(t, Defaults(), s)
}

func TestLoad_UnreadableFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	s, err := Load(dir)
	require.Error(t, err)
	assert.True(t, ferrors.IsSoft(err))
	assert.Equal(t, Defaults(), s)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FILESYNC_DOTENV_ADDR=:7000\n"), 0o644))
	t.Setenv("FILESYNC_DOTENV_ADDR", "")
	require.NoError(t, os.Unsetenv("FILESYNC_DOTENV_ADDR"))

	s, err := Load(writeConfig(t, "http:\n  listen_addr: \"${FILESYNC_DOTENV_ADDR}\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":7000", s.HTTP.ListenAddr)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FILESYNC_DOTENV_ROOT=/from-file\n"), 0o644))
	t.Setenv("FILESYNC_DOTENV_ROOT", "/from-env")

	s, err := Load(writeConfig(t, "root: ${FILESYNC_DOTENV_ROOT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/from-env", s.Root)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filesync.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.IsCategory(err, ferrors.CategoryValidation))
	require.NoError(t, Init(path, true))

	t.Chdir(t.TempDir())
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s, "the template mirrors the defaults")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat("xml"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
}

func TestNewLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(&buf, LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}, false)
	assert.False(t, h.Enabled(t.Context(), -4))

	verbose := NewLogHandler(&buf, LoggingConfig{Level: LogLevelError}, true)
	assert.True(t, verbose.Enabled(t.Context(), -4), "verbose forces debug")

	logger := newTestLogger(h)
	logger.Warn("copy failed", "profile_id", 2)
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "json handler expected, got %q", buf.String())
	assert.Contains(t, buf.String(), `"profile_id":2`)
}

func newTestLogger(h slog.Handler) *slog.Logger { return slog.New(h) }
