package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/journal"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of passes to show" default:"20"`
}

func (c *HistoryCmd) Run(g *Global, root *CLI) error {
	settings := root.Settings()
	if !settings.Journal.Enabled {
		return ferrors.ValidationFailed("journal", "the pass journal is disabled in the settings file")
	}
	store, err := openJournal(settings.JournalPath())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	recs, err := store.Recent(context.Background(), c.Limit)
	if err != nil {
		return ferrors.JournalFailed("read", err)
	}
	renderHistory(g.out(), recs)
	return nil
}

func renderHistory(w io.Writer, recs []journal.Record) {
	if len(recs) == 0 {
		_, _ = fmt.Fprintln(w, "No sync passes recorded yet.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Finished", "Trigger", "Copied", "Attempted", "Errors", "Pass"})
	for _, r := range recs {
		t.AppendRow(table.Row{
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			r.Trigger, r.Copied, r.Attempted, r.Failed(), r.PassID,
		})
	}
	t.Render()
}
