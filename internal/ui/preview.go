package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/files"
	"github.com/faizmokh/jurnal/internal/workspace"
)

var previewClose = key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "close"))

// Preview is a read-only pane. It has no cursor to place.
type Preview struct {
	doc      *files.Document
	content  string
	viewport viewport.Model
}

// NewPreview renders content scrolled to the newest entry.
func NewPreview(doc *files.Document, content string) *Preview {
	vp := viewport.New(80, 20)
	vp.SetContent(renderMarkdown(content))
	vp.GotoBottom()
	return &Preview{doc: doc, content: content, viewport: vp}
}

// PreviewOpener opens documents in read-only panes.
func PreviewOpener() workspace.Opener {
	return func(doc *files.Document, content string) workspace.View {
		return NewPreview(doc, content)
	}
}

// Document returns the document shown in the pane.
func (p *Preview) Document() *files.Document {
	return p.doc
}

// Init does nothing.
func (p *Preview) Init() tea.Cmd {
	return nil
}

// Update scrolls and closes.
func (p *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.viewport.Width = msg.Width
		if height := msg.Height - 2; height > 0 {
			p.viewport.Height = height
		}
		p.viewport.GotoBottom()
		return p, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}
		if key.Matches(msg, previewClose) {
			return p, closeView(p)
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the pane.
func (p *Preview) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.doc.Path + " (preview)"))
	b.WriteByte('\n')
	b.WriteString(p.viewport.View())
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("up/down scroll  esc/q close"))
	return b.String()
}

func renderMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			lines[i] = headingStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
