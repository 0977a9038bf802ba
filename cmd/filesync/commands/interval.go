package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/filesync/internal/logfields"
)

// IntervalCmd implements the 'interval' command.
type IntervalCmd struct {
	Minutes int `arg:"" help:"Minutes between automatic passes (1..1440)"`
}

func (c *IntervalCmd) Run(g *Global, root *CLI) error {
	sess := openSession(root)
	minutes := clampUIInterval(c.Minutes)
	if minutes != c.Minutes {
		slog.Warn("Interval out of range, clamped", logfields.IntervalMinutes(minutes))
	}
	sess.schedule.IntervalMinutes = minutes
	_, _ = fmt.Fprintf(g.out(), "Interval set to %d minutes\n", minutes)
	return sess.save()
}
