package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/shieldsweeper/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve games over HTTP and websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.stderrLogger()
			if err != nil {
				return err
			}
			log.Info("starting up, mode = ", opts.cfg.Mode)
			log.WithFields(opts.cfg.Fields()).Debug("config")

			l, err := opts.loadLayout("")
			if err != nil {
				return err
			}
			log.WithField("layout", l.Name).Info("layout loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(log, opts.cfg, l)
			if err != nil {
				return err
			}
			if err := a.Start(ctx); err != nil && ctx.Err() == nil {
				log.WithError(err).Error("exit reason")
				return err
			}
			log.Info("shut down")
			return nil
		},
	}
}
