package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jurnal/internal/journal"
)

func newListCommand(ctx context.Context, s *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the entries in the journal, newest last.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("--limit must be zero or positive")
			}

			a := s.app
			settings, err := a.Store.Load(ctx)
			if err != nil {
				return err
			}

			blocks, err := a.Reader.Recent(ctx, settings, limit)
			if err != nil {
				if errors.Is(err, journal.ErrNoJournal) {
					fmt.Fprintf(cmd.OutOrStdout(), "No journal yet at %s\n", settings.DocumentPath())
					return nil
				}
				return err
			}
			if len(blocks) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries in %s\n", settings.DocumentPath())
				return nil
			}

			printBlocks(cmd, blocks)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the last N entries (0 shows all)")

	return cmd
}
