package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jurnal/internal/app"
	"github.com/faizmokh/jurnal/internal/ui"
)

func newNewCommand(ctx context.Context, s *session) *cobra.Command {
	var (
		atFlag   string
		openFlag string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Append a timestamped heading to the journal and open it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := s.app

			if atFlag != "" {
				clock, err := resolveClock(atFlag)
				if err != nil {
					return err
				}
				a.Clock = clock
			}

			mode, err := resolveOpenMode(openFlag, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if dryRun {
				settings, err := a.Store.Load(ctx)
				if err != nil {
					return err
				}
				heading := a.Composer.Heading(a.Clock.Now(), settings.Locale)
				fmt.Fprintf(cmd.OutOrStdout(), "Would add %s to %s\n", strings.TrimSpace(heading), settings.DocumentPath())
				return nil
			}

			useOpener(ctx, a, mode)
			out, err := a.CreateEntry(ctx)
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return runPanes(ctx, a)
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", `Entry time as "YYYY-MM-DD HH:MM" (default: now)`)
	cmd.Flags().StringVar(&openFlag, "open", "", "View to open: editor|preview|none (default: editor on a terminal)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the heading without writing it")

	return cmd
}

func useOpener(ctx context.Context, a *app.App, mode openMode) {
	switch mode {
	case openEditor:
		a.Workspace.SetOpener(ui.EditorOpener(ctx, a.Workspace))
	case openPreview:
		a.Workspace.SetOpener(ui.PreviewOpener())
	default:
		a.Workspace.SetOpener(nil)
	}
}

// runPanes hands the terminal to the views a command opened, if any.
func runPanes(ctx context.Context, a *app.App) error {
	if a.Workspace.Active() == nil {
		return nil
	}
	program := tea.NewProgram(ui.NewPanes(a.Workspace), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run panes: %w", err)
	}
	return nil
}
