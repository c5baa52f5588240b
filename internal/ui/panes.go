package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/workspace"
)

// Panes runs the workspace's open views on their own, front to back, and
// quits once the last one closes.
type Panes struct {
	ws   *workspace.Workspace
	size *tea.WindowSizeMsg
}

// NewPanes wraps ws for a standalone program.
func NewPanes(ws *workspace.Workspace) *Panes {
	return &Panes{ws: ws}
}

// Init starts the active pane.
func (p *Panes) Init() tea.Cmd {
	if view := p.ws.Active(); view != nil {
		return view.Init()
	}
	return tea.Quit
}

// Update routes messages to the active pane.
func (p *Panes) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CloseViewMsg:
		p.ws.Close(msg.View)
		next := p.ws.Active()
		if next == nil {
			return p, tea.Quit
		}
		if p.size != nil {
			next.Update(*p.size)
		}
		return p, next.Init()
	case tea.WindowSizeMsg:
		size := msg
		p.size = &size
	}

	view := p.ws.Active()
	if view == nil {
		return p, tea.Quit
	}
	_, cmd := view.Update(msg)
	return p, cmd
}

// View renders the active pane.
func (p *Panes) View() string {
	if view := p.ws.Active(); view != nil {
		return view.View()
	}
	return ""
}
