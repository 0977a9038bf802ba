package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/filesync/internal/daemon"
	"git.home.luguber.info/inful/filesync/internal/syncer"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct{}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	sess := openSession(root)
	return sess.finish(runSync(context.Background(), g.out(), sess))
}

func runSync(ctx context.Context, w io.Writer, sess *session) error {
	eng, err := newEngine(sess)
	if err != nil {
		return err
	}
	defer func() { _ = eng.close(context.Background()) }()

	sum, err := eng.coord.SyncAllNow(ctx)
	if err != nil {
		return err
	}
	renderSummary(w, sess, sum)
	return nil
}

func renderSummary(w io.Writer, sess *session, sum daemon.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Profile", "Source", "Copied", "Attempted", "Result"})
	snaps := sess.set.Snapshots()
	for i, o := range sum.Outcomes {
		src := ""
		if i < len(snaps) {
			src = snaps[i].Source
		}
		t.AppendRow(table.Row{o.ProfileID, src, o.Copied, o.Attempted, resultText(o)})
	}
	t.Render()
	_, _ = fmt.Fprintln(w, sum.String())
}

func resultText(o syncer.Outcome) string {
	switch {
	case o.Skipped == syncer.SkipNoSource:
		return "no source"
	case o.Skipped == syncer.SkipSourceMissing:
		return "source missing"
	case o.Attempted == 0:
		return "no destinations"
	case o.Failed() == 0:
		return "ok"
	default:
		return fmt.Sprintf("%d failed", o.Failed())
	}
}
