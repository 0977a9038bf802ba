package commands

import (
	"fmt"

	"git.home.luguber.info/inful/filesync/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing settings file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	w := g.out()
	_, _ = fmt.Fprintf(w, "Writing settings to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "initialized successfully")
	return nil
}
