package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/files"
	"github.com/faizmokh/jurnal/internal/workspace"
)

// Appender writes text to the end of a document.
type Appender interface {
	Append(ctx context.Context, doc *files.Document, text string) error
}

// CloseViewMsg asks whoever hosts the pane to close it.
type CloseViewMsg struct {
	View workspace.View
}

type editorSavedMsg struct {
	value string
	err   error
}

type editorKeyMap struct {
	Save  key.Binding
	Close key.Binding
	Quit  key.Binding
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Close, k.Quit}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var editorKeys = editorKeyMap{
	Save:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// editorWindow is how many trailing lines of a document the editor loads.
// The textarea holds at most 10000 lines, and journals only grow.
const editorWindow = 2000

// Editor is an editable pane over a document. Text already in the document
// is treated as written: saving appends only what was typed after it.
// Long documents are loaded as a tail window; line numbers in LastLine,
// SetCursor and Cursor are always document lines.
type Editor struct {
	ctx      context.Context
	doc      *files.Document
	appender Appender

	// offset is the document line shown on the first textarea line.
	offset int
	area   textarea.Model
	help  help.Model
	saved string

	confirmDiscard bool
	statusLine     string
	errorLine      string
}

// NewEditor loads content into a textarea with the cursor at the end.
func NewEditor(ctx context.Context, doc *files.Document, content string, appender Appender) *Editor {
	offset := 0
	if lines := strings.Split(content, "\n"); len(lines) > editorWindow {
		offset = len(lines) - editorWindow
		content = strings.Join(lines[offset:], "\n")
	}

	area := textarea.New()
	area.CharLimit = 0
	area.MaxHeight = 0
	area.ShowLineNumbers = true
	area.SetWidth(80)
	area.SetHeight(20)
	area.SetValue(content)
	area.Focus()

	return &Editor{
		ctx:      ctx,
		doc:      doc,
		appender: appender,
		offset:   offset,
		area:     area,
		help:     help.New(),
		saved:    area.Value(),
	}
}

// EditorOpener opens documents in editable panes that save through appender.
func EditorOpener(ctx context.Context, appender Appender) workspace.Opener {
	return func(doc *files.Document, content string) workspace.View {
		return NewEditor(ctx, doc, content, appender)
	}
}

// Document returns the document shown in the pane.
func (e *Editor) Document() *files.Document {
	return e.doc
}

// LastLine returns the zero-based index of the last document line.
func (e *Editor) LastLine() int {
	return e.offset + e.area.LineCount() - 1
}

// SetCursor moves the cursor to line and column ch. Positions past the end
// of the document land at the end of the last line; lines before the loaded
// window land at its start.
func (e *Editor) SetCursor(line, ch int) {
	line -= e.offset
	lines := strings.Split(e.area.Value(), "\n")
	last := len(lines) - 1
	if line < 0 {
		line, ch = 0, 0
	}
	if line > last {
		line = last
		ch = len([]rune(lines[last]))
	}
	if width := len([]rune(lines[line])); ch > width {
		ch = width
	}
	if ch < 0 {
		ch = 0
	}

	limit := len(e.area.Value()) + len(lines) + 1
	for i := 0; e.area.Line() > line && i < limit; i++ {
		e.area.CursorUp()
	}
	for i := 0; e.area.Line() < line && i < limit; i++ {
		e.area.CursorDown()
	}
	e.area.SetCursor(ch)
}

// Cursor reports the zero-based document line and column of the cursor.
func (e *Editor) Cursor() (int, int) {
	return e.offset + e.area.Line(), e.area.LineInfo().ColumnOffset
}

// Value returns the loaded text, saved or not. For long documents this is
// the tail window only.
func (e *Editor) Value() string {
	return e.area.Value()
}

// Dirty reports whether there is typed text not yet appended.
func (e *Editor) Dirty() bool {
	return e.area.Value() != e.saved
}

// Init starts the cursor blinking.
func (e *Editor) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles keys and save results.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.area.SetWidth(msg.Width)
		if height := msg.Height - 4; height > 0 {
			e.area.SetHeight(height)
		}
		e.help.Width = msg.Width
		return e, nil
	case editorSavedMsg:
		if msg.err != nil {
			e.errorLine = msg.err.Error()
			return e, nil
		}
		e.saved = msg.value
		e.errorLine = ""
		e.statusLine = "Saved."
		return e, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, editorKeys.Quit):
			return e, tea.Quit
		case key.Matches(msg, editorKeys.Save):
			return e.save()
		case key.Matches(msg, editorKeys.Close):
			if e.Dirty() && !e.confirmDiscard {
				e.confirmDiscard = true
				e.errorLine = "Unsaved text. ctrl+s to save, esc again to discard."
				return e, nil
			}
			return e, closeView(e)
		}
		e.confirmDiscard = false
	}

	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return e, cmd
}

func (e *Editor) save() (tea.Model, tea.Cmd) {
	value := e.area.Value()
	if !strings.HasPrefix(value, e.saved) {
		e.errorLine = "Earlier entries are read-only; only text after them can be saved."
		return e, nil
	}
	suffix := value[len(e.saved):]
	if suffix == "" {
		e.statusLine = "Nothing to save."
		e.errorLine = ""
		return e, nil
	}

	ctx, appender, doc := e.ctx, e.appender, e.doc
	return e, func() tea.Msg {
		if err := appender.Append(ctx, doc, suffix); err != nil {
			return editorSavedMsg{err: fmt.Errorf("save %s: %w", doc.Path, err)}
		}
		return editorSavedMsg{value: value}
	}
}

// View renders the pane.
func (e *Editor) View() string {
	var b strings.Builder
	title := e.doc.Path
	if e.offset > 0 {
		title += fmt.Sprintf(" (from line %d)", e.offset+1)
	}
	if e.Dirty() {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	b.WriteString(e.area.View())
	b.WriteByte('\n')
	if line := messageLine(e.statusLine, e.errorLine); line != "" {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(e.help.View(editorKeys))
	return b.String()
}

func closeView(view workspace.View) tea.Cmd {
	return func() tea.Msg {
		return CloseViewMsg{View: view}
	}
}
