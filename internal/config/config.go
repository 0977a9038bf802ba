// Package config loads the optional YAML settings file of the filesync CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/profile"
	"git.home.luguber.info/inful/filesync/internal/state"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "filesync.yaml"

// Settings is the content of the settings file.
type Settings struct {
	Root     string        `yaml:"root"`
	Profiles int           `yaml:"profiles"`
	Logging  LoggingConfig `yaml:"logging"`
	HTTP     HTTPConfig    `yaml:"http"`
	Journal  JournalConfig `yaml:"journal"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// HTTPConfig configures the status endpoint served by `run`.
type HTTPConfig struct {
	// ListenAddr such as ":9464"; empty disables the server.
	ListenAddr string `yaml:"listen_addr"`
}

// JournalConfig configures the pass history database.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Defaults returns the settings used when no file exists.
func Defaults() *Settings {
	return &Settings{
		Root:     ".",
		Profiles: profile.MaxProfiles,
		Logging:  LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Journal:  JournalConfig{Enabled: true},
	}
}

// StatePath is the key/value state file under the root.
func (s *Settings) StatePath() string {
	return state.PathForRoot(s.Root)
}

// JournalPath is the journal database, defaulting next to the state file.
func (s *Settings) JournalPath() string {
	if s.Journal.Path != "" {
		return s.Journal.Path
	}
	return filepath.Join(s.Root, state.DirName, "journal.db")
}

// Load reads the settings file. A missing file yields defaults. An unreadable
// or malformed file yields defaults together with a soft configuration error.
func Load(configPath string) (*Settings, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}

	settings := Defaults()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return Defaults(), ferrors.ConfigUnreadable(configPath, fmt.Errorf("read: %w", err))
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), settings); err != nil {
		return Defaults(), ferrors.ConfigUnreadable(configPath, fmt.Errorf("unmarshal: %w", err))
	}
	settings.normalize()
	return settings, nil
}

func (s *Settings) normalize() {
	if s.Root == "" {
		s.Root = "."
	}
	if s.Profiles == 0 {
		s.Profiles = profile.MaxProfiles
	}
	s.Profiles = profile.ClampCount(s.Profiles)
	s.Logging.Level = NormalizeLogLevel(string(s.Logging.Level))
	s.Logging.Format = NormalizeLogFormat(string(s.Logging.Format))
}

const settingsTemplate = `# filesync settings
# The profile state lives in <root>/config/config.csv.
root: "."
# Number of profiles (1..3).
profiles: 3
logging:
  level: info   # debug|info|warn|error
  format: text  # text|json
http:
  # Serve /healthz, /status and /metrics while "filesync run" is active.
  listen_addr: ""
journal:
  enabled: true
  path: ""      # default <root>/config/journal.db
`

// Init writes an example settings file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationFailed("config",
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.ConfigWriteFailed(configPath, err)
		}
	}
	if err := os.WriteFile(configPath, []byte(settingsTemplate), 0o644); err != nil {
		return ferrors.ConfigWriteFailed(configPath, err)
	}
	return nil
}
