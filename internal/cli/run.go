package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jurnal/internal/commands"
)

func newRunCommand(ctx context.Context, s *session) *cobra.Command {
	var openFlag string

	cmd := &cobra.Command{
		Use:   "run <command-id>",
		Short: "Run a registered command by id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := s.app
			mode, err := resolveOpenMode(openFlag, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			useOpener(ctx, a, mode)

			if err := a.Commands.Run(ctx, args[0]); err != nil {
				return err
			}
			if args[0] == commands.CreateJournalEntry {
				printOutcome(cmd, a.LastOutcome())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Ran %s\n", args[0])
			}
			return runPanes(ctx, a)
		},
	}

	cmd.Flags().StringVar(&openFlag, "open", "", "View to open: editor|preview|none (default: editor on a terminal)")

	return cmd
}

func newCommandsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "commands [query]",
		Short: "List registered commands, optionally filtered.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := s.app.Commands.Filter(query)
			if len(matches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No commands match %q\n", query)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range matches {
				icon := c.Icon
				if icon == "" {
					icon = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, icon)
			}
			return tw.Flush()
		},
	}
}
