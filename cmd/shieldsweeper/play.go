package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vancomm/shieldsweeper/internal/term"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		layoutPath string
		mute       bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal, so only a log file gets output.
			log, err := opts.logger(io.Discard)
			if err != nil {
				return err
			}

			l, err := opts.loadLayout(layoutPath)
			if err != nil {
				return err
			}

			sounds, err := term.NewSounds(opts.cfg.Audio && !mute)
			if err != nil {
				log.WithError(err).Warn("audio disabled")
			}
			defer sounds.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("unable to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("unable to init screen: %w", err)
			}
			defer screen.Fini()

			ui, err := term.New(log, screen, l, sounds)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return ui.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "layout file to play instead of the configured one")
	cmd.Flags().BoolVar(&mute, "mute", false, "disable audio cues")
	return cmd
}
