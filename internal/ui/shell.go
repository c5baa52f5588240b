package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/jurnal/internal/commands"
	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/journal"
	"github.com/faizmokh/jurnal/internal/workspace"
)

const (
	recentLimit = 10

	settingsItemID   = "open-settings"
	settingsItemName = "Open settings"
)

// ShellDeps are the collaborators the launcher needs.
type ShellDeps struct {
	Commands  *commands.Registry
	Workspace *workspace.Workspace
	Store     config.Store
	Reader    *journal.Reader
}

// Shell owns Bubble Tea state for the launcher: the ribbon, the command
// palette, the settings panel and whichever pane is open.
type Shell struct {
	ctx  context.Context
	deps ShellDeps

	mode     mode
	recent   []journal.Block
	palette  textinput.Model
	matches  []paletteItem
	selected int
	settings *SettingsPanel
	size     *tea.WindowSizeMsg

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeHome mode = iota
	modePalette
	modeSettings
	modePane
)

type recentLoadedMsg struct {
	blocks []journal.Block
	err    error
}

type commandResultMsg struct {
	name string
	err  error
}

type paletteItem struct {
	id   string
	name string
	icon string
}

type ribbonButton struct {
	item  paletteItem
	label string
	start int
	end   int
}

// NewShell seeds the launcher with its collaborators.
func NewShell(ctx context.Context, deps ShellDeps) *Shell {
	palette := textinput.New()
	palette.Placeholder = "Type a command"
	palette.Prompt = ": "

	return &Shell{
		ctx:        ctx,
		deps:       deps,
		mode:       modeHome,
		palette:    palette,
		loading:    true,
		statusLine: "Loading recent entries...",
	}
}

// Init loads the recent entries.
func (s *Shell) Init() tea.Cmd {
	return s.loadRecentCmd()
}

// Update wires state transitions from user input and async commands.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		size := msg
		s.size = &size
	case recentLoadedMsg:
		return s.handleRecentLoaded(msg)
	case commandResultMsg:
		return s.handleCommandResult(msg)
	case SettingsClosedMsg:
		s.mode = modeHome
		s.settings = nil
		s.statusLine = "Settings saved."
		return s, s.loadRecentCmd()
	case CloseViewMsg:
		return s.handleCloseView(msg)
	}

	switch s.mode {
	case modePane:
		return s.updatePane(msg)
	case modeSettings:
		_, cmd := s.settings.Update(msg)
		return s, cmd
	case modePalette:
		return s.updatePalette(msg)
	default:
		return s.updateHome(msg)
	}
}

func (s *Shell) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || msg.Y != 0 {
			return s, nil
		}
		for _, button := range s.ribbon() {
			if msg.X >= button.start && msg.X < button.end {
				return s.run(button.item)
			}
		}
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return s, tea.Quit
		case "n":
			return s.run(paletteItem{id: commands.CreateJournalEntry})
		case "s":
			return s.openSettings()
		case "r":
			s.loading = true
			s.statusLine = "Reloading..."
			s.errorLine = ""
			return s, s.loadRecentCmd()
		case ":", "ctrl+p":
			s.mode = modePalette
			s.palette.SetValue("")
			s.palette.Focus()
			s.filterPalette()
			s.errorLine = ""
			return s, textinput.Blink
		}
	}
	return s, nil
}

func (s *Shell) updatePalette(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			return s, tea.Quit
		case tea.KeyEsc:
			s.closePalette()
			s.statusLine = "Cancelled."
			return s, nil
		case tea.KeyUp, tea.KeyShiftTab:
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case tea.KeyDown, tea.KeyTab:
			if s.selected < len(s.matches)-1 {
				s.selected++
			}
			return s, nil
		case tea.KeyEnter:
			if len(s.matches) == 0 {
				s.errorLine = fmt.Sprintf("No command matches %q.", s.palette.Value())
				return s, nil
			}
			item := s.matches[s.selected]
			s.closePalette()
			return s.run(item)
		}
	}

	var cmd tea.Cmd
	s.palette, cmd = s.palette.Update(msg)
	s.filterPalette()
	return s, cmd
}

func (s *Shell) updatePane(msg tea.Msg) (tea.Model, tea.Cmd) {
	view := s.deps.Workspace.Active()
	if view == nil {
		s.mode = modeHome
		return s, s.loadRecentCmd()
	}
	_, cmd := view.Update(msg)
	return s, cmd
}

func (s *Shell) handleCloseView(msg CloseViewMsg) (tea.Model, tea.Cmd) {
	s.deps.Workspace.Close(msg.View)
	next := s.deps.Workspace.Active()
	if next == nil {
		s.mode = modeHome
		s.statusLine = fmt.Sprintf("Closed %s.", msg.View.Document().Path)
		return s, s.loadRecentCmd()
	}
	return s, s.showPane(next)
}

func (s *Shell) handleRecentLoaded(msg recentLoadedMsg) (tea.Model, tea.Cmd) {
	s.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, journal.ErrNoJournal) {
			s.recent = nil
			s.statusLine = "No entries yet. Press n to write the first one."
			return s, nil
		}
		s.errorLine = msg.err.Error()
		s.statusLine = ""
		return s, nil
	}
	s.recent = msg.blocks
	if s.statusLine == "Loading recent entries..." || s.statusLine == "Reloading..." {
		s.statusLine = fmt.Sprintf("Loaded %d entr%s.", len(msg.blocks), plural(len(msg.blocks)))
	}
	return s, nil
}

func (s *Shell) handleCommandResult(msg commandResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		s.errorLine = msg.err.Error()
		s.statusLine = ""
		return s, nil
	}
	s.errorLine = ""
	s.statusLine = fmt.Sprintf("Ran %s.", msg.name)

	if view := s.deps.Workspace.Active(); view != nil {
		return s, tea.Batch(s.showPane(view), s.loadRecentCmd())
	}
	return s, s.loadRecentCmd()
}

func (s *Shell) showPane(view workspace.View) tea.Cmd {
	s.mode = modePane
	if s.size != nil {
		view.Update(*s.size)
	}
	return view.Init()
}

func (s *Shell) run(item paletteItem) (tea.Model, tea.Cmd) {
	if item.id == settingsItemID {
		return s.openSettings()
	}

	cmd, err := s.deps.Commands.Lookup(item.id)
	if err != nil {
		s.errorLine = err.Error()
		return s, nil
	}
	s.statusLine = fmt.Sprintf("Running %s...", cmd.Name)
	s.errorLine = ""

	ctx := s.ctx
	return s, func() tea.Msg {
		return commandResultMsg{name: cmd.Name, err: cmd.Run(ctx)}
	}
}

func (s *Shell) openSettings() (tea.Model, tea.Cmd) {
	current, err := s.deps.Store.Load(s.ctx)
	if err != nil {
		s.errorLine = err.Error()
		return s, nil
	}
	s.settings = NewSettingsPanel(s.ctx, s.deps.Store, current, false)
	s.mode = modeSettings
	s.errorLine = ""
	return s, s.settings.Init()
}

func (s *Shell) closePalette() {
	s.mode = modeHome
	s.palette.Blur()
	s.matches = nil
	s.selected = 0
}

func (s *Shell) filterPalette() {
	query := s.palette.Value()
	s.matches = s.matches[:0]
	for _, cmd := range s.deps.Commands.Filter(query) {
		s.matches = append(s.matches, paletteItem{id: cmd.ID, name: cmd.Name, icon: cmd.Icon})
	}
	if matchesQuery(settingsItemID+" "+settingsItemName, query) {
		s.matches = append(s.matches, paletteItem{id: settingsItemID, name: settingsItemName, icon: "settings"})
	}
	if s.selected >= len(s.matches) {
		s.selected = 0
	}
}

func (s *Shell) ribbon() []ribbonButton {
	items := make([]paletteItem, 0, 4)
	for _, cmd := range s.deps.Commands.Ribbon() {
		items = append(items, paletteItem{id: cmd.ID, name: cmd.Name, icon: cmd.Icon})
	}
	items = append(items, paletteItem{id: settingsItemID, name: settingsItemName, icon: "settings"})

	buttons := make([]ribbonButton, 0, len(items))
	x := 0
	for _, item := range items {
		label := ribbonStyle.Render(iconGlyph(item.icon) + " " + item.name)
		width := lipgloss.Width(label)
		buttons = append(buttons, ribbonButton{item: item, label: label, start: x, end: x + width})
		x += width + 1
	}
	return buttons
}

func (s *Shell) loadRecentCmd() tea.Cmd {
	ctx, store, reader := s.ctx, s.deps.Store, s.deps.Reader
	return func() tea.Msg {
		settings, err := store.Load(ctx)
		if err != nil {
			return recentLoadedMsg{err: err}
		}
		blocks, err := reader.Recent(ctx, settings, recentLimit)
		return recentLoadedMsg{blocks: blocks, err: err}
	}
}

// View renders the frame.
func (s *Shell) View() string {
	switch s.mode {
	case modePane:
		if view := s.deps.Workspace.Active(); view != nil {
			return view.View()
		}
	case modeSettings:
		return s.settings.View()
	}

	var b strings.Builder

	labels := make([]string, 0, 4)
	for _, button := range s.ribbon() {
		labels = append(labels, button.label)
	}
	b.WriteString(strings.Join(labels, " "))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Recent entries"))
	b.WriteByte('\n')
	if s.loading {
		b.WriteString("Loading...\n")
	} else if len(s.recent) == 0 {
		b.WriteString(dimStyle.Render("(no entries)"))
		b.WriteByte('\n')
	} else {
		for _, block := range s.recent {
			b.WriteString("  ")
			b.WriteString(headingStyle.Render(block.Heading))
			if len(block.Body) > 0 {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d line%s)", len(block.Body), pluralS(len(block.Body)))))
			}
			b.WriteByte('\n')
		}
	}

	if line := messageLine(s.statusLine, s.errorLine); line != "" {
		b.WriteByte('\n')
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if s.mode == modePalette {
		b.WriteByte('\n')
		b.WriteString(s.palette.View())
		b.WriteByte('\n')
		for i, item := range s.matches {
			cursor := "  "
			if i == s.selected {
				cursor = focusStyle.Render("> ")
			}
			b.WriteString(cursor)
			b.WriteString(item.name)
			b.WriteString(dimStyle.Render("  " + item.id))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("Actions: n new entry  : or ctrl+p palette  s settings  r reload  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func matchesQuery(text, query string) bool {
	text = strings.ToLower(text)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(text, word) {
			return false
		}
	}
	return true
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}

func pluralS(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
