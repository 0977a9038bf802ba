package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/filesync/internal/daemon"
	"git.home.luguber.info/inful/filesync/internal/logfields"
)

const stopTimeout = 30 * time.Second

// RunCmd implements the 'run' command.
type RunCmd struct {
	Interval int `short:"i" help:"Interval in minutes (1..1440); defaults to the stored interval"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess := openSession(root)
	return sess.finish(r.serve(ctx, g.out(), sess))
}

// serve arms auto-sync and blocks until ctx ends.
func (r *RunCmd) serve(ctx context.Context, w io.Writer, sess *session) error {
	minutes := sess.schedule.IntervalMinutes
	if r.Interval != 0 {
		minutes = clampUIInterval(r.Interval)
	}
	sess.schedule.IntervalMinutes = minutes

	eng, err := newEngine(sess)
	if err != nil {
		return err
	}
	eng.coord.OnPass(func(s daemon.Summary) { _, _ = fmt.Fprintln(w, s.String()) })

	var srv *daemon.HTTPServer
	if addr := sess.settings.HTTP.ListenAddr; addr != "" {
		srv = daemon.NewHTTPServer(addr, eng.coord, eng.registry)
		if err := srv.Start(ctx); err != nil {
			_ = eng.close(context.Background())
			return err
		}
	}

	if err := eng.coord.StartAutoSync(minutes); err != nil {
		_ = eng.close(context.Background())
		return err
	}
	slog.Info("Auto-sync running, waiting for shutdown signal...", logfields.IntervalMinutes(minutes))

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping auto-sync...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()

	eng.coord.StopAutoSync()
	sess.schedule = eng.coord.Schedule()
	if srv != nil {
		if err := srv.Stop(stopCtx); err != nil {
			slog.Warn("Failed to stop HTTP server", logfields.Error(err))
		}
	}
	if err := eng.close(stopCtx); err != nil {
		return fmt.Errorf("failed to stop auto-sync: %w", err)
	}
	slog.Info("Auto-sync stopped")
	return nil
}
