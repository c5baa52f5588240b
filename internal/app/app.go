// Package app wires settings, the vault, the workspace and the entry
// composer into the commands the CLI and the launcher trigger.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/faizmokh/jurnal/internal/commands"
	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/files"
	"github.com/faizmokh/jurnal/internal/journal"
	"github.com/faizmokh/jurnal/internal/locale"
	"github.com/faizmokh/jurnal/internal/workspace"
)

// Options configure New. Zero values fall back to the environment.
type Options struct {
	VaultPath string
	ConfigDir string
	Verbose   bool
	Clock     journal.Clock
	Store     config.Store
	LogOutput io.Writer
}

// App holds the long-lived collaborators for one process.
type App struct {
	Store     config.Store
	Workspace *workspace.Workspace
	Composer  *journal.Composer
	Reader    *journal.Reader
	Commands  *commands.Registry
	Clock     journal.Clock
	Logger    *log.Logger

	mu   sync.Mutex
	last journal.Outcome
}

// New builds an App from opts and the environment.
func New(opts Options) (*App, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "jurnal: ", 0)
	if opts.Verbose || env.Verbose {
		out := opts.LogOutput
		if out == nil {
			out = os.Stderr
		}
		logger.SetOutput(out)
	}

	vaultPath := opts.VaultPath
	if vaultPath == "" {
		vaultPath = env.Home
	}
	vault, err := files.NewVault(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	store := opts.Store
	if store == nil {
		dir := opts.ConfigDir
		if dir == "" {
			dir = env.Dir()
		}
		if dir == "" {
			return nil, errors.New("cannot determine config directory; set JURNAL_CONFIG_HOME")
		}
		store = config.NewFileStore(dir)
	}

	clock := opts.Clock
	if clock == nil {
		clock = journal.SystemClock{}
	}

	a := &App{
		Store:     store,
		Workspace: workspace.New(vault, nil, logger),
		Composer:  journal.NewComposer(locale.NewFormatter(), logger),
		Reader:    journal.NewReader(vault),
		Commands:  commands.NewRegistry(),
		Clock:     clock,
		Logger:    logger,
	}

	if err := a.Commands.Register(commands.Command{
		ID:   commands.CreateJournalEntry,
		Name: commands.CreateJournalEntryName,
		Icon: commands.CreateJournalEntryIcon,
		Run: func(ctx context.Context) error {
			_, err := a.CreateEntry(ctx)
			return err
		},
	}); err != nil {
		return nil, err
	}

	logger.Printf("vault %s", vault.BasePath())
	return a, nil
}

// CreateEntry loads the current settings and appends a new entry heading.
func (a *App) CreateEntry(ctx context.Context) (journal.Outcome, error) {
	settings, err := a.Store.Load(ctx)
	if err != nil {
		return journal.Outcome{}, err
	}
	out, err := a.Composer.CreateEntry(ctx, settings, a.Clock, a.Workspace)
	a.mu.Lock()
	a.last = out
	a.mu.Unlock()
	return out, err
}

// LastOutcome returns the result of the most recently finished CreateEntry.
// Triggers may run concurrently; the last one to finish wins.
func (a *App) LastOutcome() journal.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// UpdateSetting changes one setting and saves it straight away.
func (a *App) UpdateSetting(ctx context.Context, key, value string) (config.Settings, error) {
	settings, err := a.Store.Load(ctx)
	if err != nil {
		return settings, err
	}
	settings, err = settings.With(key, value)
	if err != nil {
		return settings, err
	}
	if err := a.Store.Save(ctx, settings); err != nil {
		return settings, err
	}
	a.Logger.Printf("saved %s=%q", key, value)
	return settings, nil
}
