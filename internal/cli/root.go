package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jurnal/internal/app"
	"github.com/faizmokh/jurnal/internal/ui"
	"github.com/faizmokh/jurnal/internal/version"
)

// session builds the App once the persistent flags are parsed.
type session struct {
	opts app.Options
	app  *app.App
}

func (s *session) open() error {
	if s.app != nil {
		return nil
	}
	a, err := app.New(s.opts)
	if err != nil {
		return err
	}
	s.app = a
	return nil
}

// NewRootCommand creates the top-level Cobra command to host subcommands and the launcher.
func NewRootCommand(ctx context.Context, opts app.Options) *cobra.Command {
	s := &session{opts: opts}

	cmd := &cobra.Command{
		Use:     "jurnal",
		Short:   "Keep a timestamped markdown journal from your terminal.",
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := s.app
			a.Workspace.SetOpener(ui.EditorOpener(ctx, a.Workspace))
			shell := ui.NewShell(ctx, ui.ShellDeps{
				Commands:  a.Commands,
				Workspace: a.Workspace,
				Store:     a.Store,
				Reader:    a.Reader,
			})
			program := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&s.opts.VaultPath, "vault", s.opts.VaultPath, "Vault directory (default: $JURNAL_HOME or ~/Jurnal)")
	flags.BoolVar(&s.opts.Verbose, "verbose", s.opts.Verbose, "Log what each command does to stderr")

	cmd.AddCommand(
		newNewCommand(ctx, s),
		newRunCommand(ctx, s),
		newCommandsCommand(s),
		newSettingsCommand(ctx, s),
		newListCommand(ctx, s),
	)

	return cmd
}

// Main is a helper used by cmd/jurnal/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	cmd := NewRootCommand(ctx, app.Options{})
	if err := fang.Execute(ctx, cmd, fang.WithVersion(version.Info())); err != nil {
		os.Exit(1)
	}
}
