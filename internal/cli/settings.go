package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/locale"
	"github.com/faizmokh/jurnal/internal/ui"
)

func newSettingsCommand(ctx context.Context, s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Edit the journal name and locale.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := s.app
			current, err := a.Store.Load(ctx)
			if err != nil {
				return err
			}
			panel := ui.NewSettingsPanel(ctx, a.Store, current, true)
			if _, err := tea.NewProgram(panel, tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("run settings: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(
		newSettingsGetCommand(ctx, s),
		newSettingsSetCommand(ctx, s),
		newSettingsLocalesCommand(),
	)

	return cmd
}

func newSettingsGetCommand(ctx context.Context, s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all of them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := s.app.Store.Load(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, err := current.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			for _, key := range config.Keys() {
				value, _ := current.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
			}
			return nil
		},
	}
}

func newSettingsSetCommand(ctx context.Context, s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := s.app.UpdateSetting(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			value, _ := updated.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s=%s\n", args[0], value)
			if args[0] == config.KeyLocale && locale.Resolve(value) != value {
				fmt.Fprintf(cmd.OutOrStdout(), "Dates will be written as %s\n", locale.Resolve(value))
			}
			return nil
		},
	}
}

func newSettingsLocalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales with dedicated date formats.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tag := range locale.Supported() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
