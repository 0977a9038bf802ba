package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/filesync/internal/profile"
)

// ProfileCmd groups the profile subcommands.
type ProfileCmd struct {
	List       ProfileListCmd       `cmd:"" default:"1" help:"List profiles with their source and destinations"`
	SetSource  ProfileSetSourceCmd  `cmd:"" name:"set-source" help:"Set the source file of a profile"`
	AddDest    ProfileAddDestCmd    `cmd:"" name:"add-dest" help:"Append a destination directory to a profile"`
	RemoveDest ProfileRemoveDestCmd `cmd:"" name:"remove-dest" help:"Remove a destination by its zero-based index"`
}

// ProfileListCmd implements 'profile list'.
type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(g *Global, root *CLI) error {
	sess := openSession(root)
	renderProfiles(g.out(), sess)
	return sess.finish(nil)
}

func renderProfiles(w io.Writer, sess *session) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Profile", "Source", "Index", "Destination"})
	sess.set.Each(func(id int, p *profile.Profile) {
		snap := p.Snapshot()
		src := snap.Source
		if src == "" {
			src = "(none)"
		}
		if len(snap.Destinations) == 0 {
			t.AppendRow(table.Row{id, src, "", "(none)"})
		}
		for i, d := range snap.Destinations {
			if i == 0 {
				t.AppendRow(table.Row{id, src, i, d})
				continue
			}
			t.AppendRow(table.Row{"", "", i, d})
		}
		t.AppendSeparator()
	})
	t.Render()
	_, _ = fmt.Fprintf(w, "Interval: %d minutes\n", sess.schedule.IntervalMinutes)
}

// ProfileSetSourceCmd implements 'profile set-source'.
type ProfileSetSourceCmd struct {
	ID   int    `arg:"" help:"Profile id (1..3)"`
	Path string `arg:"" help:"Source file"`
}

func (c *ProfileSetSourceCmd) Run(g *Global, root *CLI) error {
	return editProfile(root, c.ID, func(p *profile.Profile) error {
		p.SetSource(c.Path)
		_, _ = fmt.Fprintf(g.out(), "Profile %d source set to %s\n", c.ID, c.Path)
		return nil
	})
}

// ProfileAddDestCmd implements 'profile add-dest'.
type ProfileAddDestCmd struct {
	ID   int    `arg:"" help:"Profile id (1..3)"`
	Path string `arg:"" help:"Destination directory"`
}

func (c *ProfileAddDestCmd) Run(g *Global, root *CLI) error {
	return editProfile(root, c.ID, func(p *profile.Profile) error {
		p.AddDestination(c.Path)
		_, _ = fmt.Fprintf(g.out(), "Profile %d destination added: %s\n", c.ID, c.Path)
		return nil
	})
}

// ProfileRemoveDestCmd implements 'profile remove-dest'.
type ProfileRemoveDestCmd struct {
	ID    int `arg:"" help:"Profile id (1..3)"`
	Index int `arg:"" help:"Zero-based destination index as shown by 'profile list'"`
}

func (c *ProfileRemoveDestCmd) Run(g *Global, root *CLI) error {
	return editProfile(root, c.ID, func(p *profile.Profile) error {
		if err := p.RemoveDestination(c.Index); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.out(), "Profile %d destination %d removed\n", c.ID, c.Index)
		return nil
	})
}

// editProfile applies fn to one profile and saves the state on success.
func editProfile(root *CLI, id int, fn func(*profile.Profile) error) error {
	sess := openSession(root)
	p, err := sess.set.Get(id)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return sess.save()
}
