package commands

import (
	"fmt"
	"io"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/syncer"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	ID    int `arg:"" help:"Profile id (1..3)"`
	Index int `arg:"" help:"Zero-based destination index"`
}

func (c *InspectCmd) Run(g *Global, root *CLI) error {
	sess := openSession(root)
	p, err := sess.set.Get(c.ID)
	if err != nil {
		return err
	}
	snap := p.Snapshot()
	if c.Index < 0 || c.Index >= len(snap.Destinations) {
		return ferrors.ValidationFailed("index",
			fmt.Sprintf("profile %d has no destination %d", c.ID, c.Index))
	}

	info, err := syncer.NewExecutor(nil).Inspect(snap.Source, snap.Destinations[c.Index])
	if err != nil {
		return err
	}
	renderInspect(g.out(), info)
	return sess.finish(nil)
}

func renderInspect(w io.Writer, info syncer.DestinationInfo) {
	_, _ = fmt.Fprintf(w, "File: %s\n", info.Target)
	if !info.Exists {
		_, _ = fmt.Fprintln(w, "File not found in destination.")
		return
	}
	_, _ = fmt.Fprintf(w, "Last Modified: %s\n\n", info.Modified.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintln(w, "Content Preview:")
	_, _ = fmt.Fprintln(w, info.Preview)
}
