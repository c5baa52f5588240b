// Package commands keeps the user-triggerable actions, addressed by a stable id.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	// CreateJournalEntry is the stable id of the command that writes a new entry heading.
	CreateJournalEntry     = "create-journal-entry"
	CreateJournalEntryName = "Create journal entry"
	CreateJournalEntryIcon = "calendar-plus"
)

// ErrUnknownCommand is returned when no command is registered under an id.
var ErrUnknownCommand = errors.New("unknown command")

// ErrDuplicateCommand is returned when an id is registered twice.
var ErrDuplicateCommand = errors.New("command already registered")

// Command is an action reachable from the ribbon, the palette and the CLI.
type Command struct {
	ID   string
	Name string
	// Icon names the ribbon glyph; empty means the command has no ribbon button.
	Icon string
	Run  func(ctx context.Context) error
}

// Registry holds commands in registration order.
type Registry struct {
	mu       sync.RWMutex
	commands []Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds cmd. IDs must be unique and non-empty.
func (r *Registry) Register(cmd Command) error {
	if strings.TrimSpace(cmd.ID) == "" {
		return errors.New("command id is required")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command %s has no action", cmd.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.commands {
		if existing.ID == cmd.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.ID)
		}
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Lookup finds a command by id.
func (r *Registry) Lookup(id string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cmd := range r.commands {
		if cmd.ID == id {
			return cmd, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, id)
}

// Run executes the command registered under id.
func (r *Registry) Run(ctx context.Context, id string) error {
	cmd, err := r.Lookup(id)
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

// All returns every command in registration order.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Ribbon returns the commands that carry an icon.
func (r *Registry) Ribbon() []Command {
	var out []Command
	for _, cmd := range r.All() {
		if cmd.Icon != "" {
			out = append(out, cmd)
		}
	}
	return out
}

// Filter returns commands whose id or name contains every word of query,
// ignoring case. An empty query matches everything.
func (r *Registry) Filter(query string) []Command {
	words := strings.Fields(strings.ToLower(query))
	var out []Command
	for _, cmd := range r.All() {
		if matches(cmd, words) {
			out = append(out, cmd)
		}
	}
	return out
}

func matches(cmd Command, words []string) bool {
	haystack := strings.ToLower(cmd.ID + " " + cmd.Name)
	for _, word := range words {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}
