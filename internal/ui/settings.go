package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/locale"
)

// SettingsClosedMsg is sent when an embedded settings panel is dismissed.
type SettingsClosedMsg struct {
	Settings config.Settings
}

type settingsSavedMsg struct {
	label string
	err   error
}

// settingsWriter serializes saves that run on separate goroutines. A save
// older than one already written is dropped, so the store always ends on the
// newest settings.
type settingsWriter struct {
	mu      sync.Mutex
	store   config.Store
	next    uint64
	written uint64
}

func (w *settingsWriter) ticket() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	return w.next
}

func (w *settingsWriter) save(ctx context.Context, gen uint64, settings config.Settings) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen <= w.written {
		return nil
	}
	if err := w.store.Save(ctx, settings); err != nil {
		return err
	}
	w.written = gen
	return nil
}

type settingField struct {
	key         string
	label       string
	description string
	placeholder string
}

var settingFields = []settingField{
	{
		key:         config.KeyJournalName,
		label:       "Journal name",
		description: "The name of the journal file (without .md)",
		placeholder: "Enter your journal name",
	},
	{
		key:         config.KeyLocale,
		label:       "Locale",
		description: "The locale to use for date and time formatting (e.g. en-US, en-GB, de-DE)",
		placeholder: "Enter your locale",
	},
}

// SettingsPanel edits the persisted settings. Every change to a field is
// saved on its own, straight away.
type SettingsPanel struct {
	ctx        context.Context
	writer     *settingsWriter
	settings   config.Settings
	standalone bool

	inputs []textinput.Model
	focus  int

	statusLine string
	errorLine  string
}

// NewSettingsPanel seeds the inputs from settings. A standalone panel quits
// the program on esc; an embedded one sends SettingsClosedMsg.
func NewSettingsPanel(ctx context.Context, store config.Store, settings config.Settings, standalone bool) *SettingsPanel {
	inputs := make([]textinput.Model, len(settingFields))
	for i, field := range settingFields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = 0
		input.Width = 60
		value, _ := settings.Get(field.key)
		input.SetValue(value)
		inputs[i] = input
	}
	inputs[0].Focus()

	return &SettingsPanel{
		ctx:        ctx,
		writer:     &settingsWriter{store: store},
		settings:   settings,
		standalone: standalone,
		inputs:     inputs,
	}
}

// Settings returns the current values.
func (s *SettingsPanel) Settings() config.Settings {
	return s.settings
}

// Init starts the cursor blinking.
func (s *SettingsPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles focus changes and writes every edit through to the store.
func (s *SettingsPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			s.errorLine = msg.err.Error()
			return s, nil
		}
		s.errorLine = ""
		s.statusLine = fmt.Sprintf("Saved %s.", strings.ToLower(msg.label))
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return s, tea.Quit
		case "esc":
			if s.standalone {
				return s, tea.Quit
			}
			settings := s.settings
			return s, func() tea.Msg { return SettingsClosedMsg{Settings: settings} }
		case "tab", "down", "enter":
			s.setFocus(s.focus + 1)
			return s, nil
		case "shift+tab", "up":
			s.setFocus(s.focus - 1)
			return s, nil
		}
	}

	field := settingFields[s.focus]
	before := s.inputs[s.focus].Value()

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)

	after := s.inputs[s.focus].Value()
	if after == before {
		return s, cmd
	}

	updated, err := s.settings.With(field.key, after)
	if err != nil {
		s.errorLine = err.Error()
		return s, cmd
	}
	s.settings = updated
	return s, tea.Batch(cmd, s.saveCmd(field.label, updated))
}

func (s *SettingsPanel) saveCmd(label string, settings config.Settings) tea.Cmd {
	ctx, writer := s.ctx, s.writer
	gen := writer.ticket()
	return func() tea.Msg {
		return settingsSavedMsg{label: label, err: writer.save(ctx, gen, settings)}
	}
}

func (s *SettingsPanel) setFocus(index int) {
	n := len(s.inputs)
	index = ((index % n) + n) % n
	s.inputs[s.focus].Blur()
	s.focus = index
	s.inputs[s.focus].Focus()
}

// View renders the panel.
func (s *SettingsPanel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	for i, field := range settingFields {
		label := labelStyle.Render(field.label)
		if i == s.focus {
			label = focusStyle.Render("> ") + label
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteByte('\n')
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(field.description))
		b.WriteByte('\n')
		b.WriteString("  ")
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("Dates are written as %s.", locale.Resolve(s.settings.Locale))))
	b.WriteByte('\n')
	if line := messageLine(s.statusLine, s.errorLine); line != "" {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(dimStyle.Render("tab/up/down switch field  esc close"))
	b.WriteByte('\n')
	return b.String()
}
