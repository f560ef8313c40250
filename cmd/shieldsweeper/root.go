package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/config"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

type rootOptions struct {
	configPath string
	envFiles   []string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "shieldsweeper",
		Short:         "A minesweeper variant played on a fixed shield-shaped board",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(opts.envFiles...); err != nil {
				return err
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (toml, yaml or json)")
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	cmd.AddCommand(
		newServeCmd(opts),
		newPlayCmd(opts),
		newMigrateCmd(opts),
		newLayoutCmd(opts),
	)
	return cmd
}

// logger builds the process logger writing to out and points the engine's
// package logger at it.
func (o *rootOptions) logger(out io.Writer) (*logrus.Logger, error) {
	log, err := config.NewLogger(o.cfg, out)
	if err != nil {
		return nil, err
	}
	board.Log = log
	return log, nil
}

func (o *rootOptions) stderrLogger() (*logrus.Logger, error) {
	return o.logger(os.Stderr)
}

// loadLayout reads the layout file at path, or the configured one when path
// is empty. With neither set it returns the built-in shield.
func (o *rootOptions) loadLayout(path string) (layout.Layout, error) {
	if path == "" {
		path = o.cfg.Layout
	}
	if path == "" {
		return layout.Shield(), nil
	}
	return layout.LoadFile(path)
}
