package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vancomm/shieldsweeper/internal/layout"
)

func newLayoutCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect board layouts",
	}
	cmd.AddCommand(newLayoutShowCmd(opts), newLayoutCheckCmd(opts))
	return cmd
}

func newLayoutShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a layout as art",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.loadLayout(firstArg(args))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), describe(l))
			return nil
		},
	}
}

func newLayoutCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report problems in a layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.loadLayout(firstArg(args))
			if err != nil {
				return err
			}
			problems := layout.Check(l)
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d problem(s)", l.Name, len(problems))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", l.Name)
			return nil
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func describe(l layout.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%dx%d, %d bombs)\n", l.Name, l.Config.Size, l.Config.Size, len(l.Config.Bombs))
	for _, row := range l.Art() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	for _, r := range l.Rewards {
		fmt.Fprintf(&b, "%s %s at %s\n", r.Kind.Glyph(), r.Kind, r.Coord())
	}
	return b.String()
}
