package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/filesync/internal/config"
	"git.home.luguber.info/inful/filesync/internal/logfields"
	"git.home.luguber.info/inful/filesync/internal/profile"
	"git.home.luguber.info/inful/filesync/internal/state"
)

// MaxIntervalMinutes is the largest interval the CLI accepts (one day).
const MaxIntervalMinutes = 1440

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output; defaults to stdout.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Settings file path" default:"filesync.yaml" type:"path"`
	Root    string           `short:"r" help:"Application root holding config/config.csv (overrides settings)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Sync     SyncCmd     `cmd:"" help:"Run one sync pass over all profiles"`
	Run      RunCmd      `cmd:"" help:"Sync periodically until interrupted"`
	Profile  ProfileCmd  `cmd:"" help:"Show or edit profiles"`
	Interval IntervalCmd `cmd:"" help:"Set the auto-sync interval in minutes"`
	Inspect  InspectCmd  `cmd:"" help:"Show the copy of a profile's source in one destination"`
	History  HistoryCmd  `cmd:"" help:"List recent sync passes from the journal"`
	Init     InitCmd     `cmd:"" help:"Write an example settings file"`

	settings *config.Settings
}

// AfterApply runs after flag parsing; load settings and set up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	settings, err := config.Load(c.Config)
	c.settings = settings
	slog.SetDefault(slog.New(config.NewLogHandler(os.Stderr, settings.Logging, c.Verbose)))
	if err != nil {
		slog.Warn("Using default settings", logfields.Path(c.Config), logfields.Error(err))
	}
	return nil
}

// Settings returns the loaded settings with the --root override applied.
func (c *CLI) Settings() *config.Settings {
	if c.settings == nil {
		settings, err := config.Load(c.Config)
		if err != nil {
			slog.Warn("Using default settings", logfields.Path(c.Config), logfields.Error(err))
		}
		c.settings = settings
	}
	if c.Root != "" {
		c.settings.Root = c.Root
	}
	return c.settings
}

// session is the profile state loaded for one command and written back when
// the command ends.
type session struct {
	settings *config.Settings
	store    *state.Store
	loaded   state.State
	set      *profile.Set
	schedule state.Schedule
}

func openSession(root *CLI) *session {
	settings := root.Settings()
	store := state.NewStore(settings.StatePath())
	st, err := store.Load()
	if err != nil {
		slog.Warn("Using default profile state", logfields.Path(store.Path()), logfields.Error(err))
	}
	return &session{
		settings: settings,
		store:    store,
		loaded:   st,
		set:      st.Set(settings.Profiles),
		schedule: st.Schedule,
	}
}

// save writes profiles and schedule back. Stored profiles beyond the
// configured count are kept untouched.
func (s *session) save() error {
	st := state.FromSet(s.set, s.schedule)
	for i := s.set.Len(); i < profile.MaxProfiles; i++ {
		st.Profiles[i] = s.loaded.Profiles[i]
	}
	return s.store.Save(st)
}

// finish saves the session and reports the first error.
func (s *session) finish(err error) error {
	if serr := s.save(); serr != nil {
		if err == nil {
			return serr
		}
		slog.Error("Failed to save profile state", logfields.Error(serr))
	}
	return err
}

func clampUIInterval(minutes int) int {
	return max(1, min(minutes, MaxIntervalMinutes))
}
