// Package workspace is the host side of journaling: it owns the vault and
// the stack of open views (panes), and hands out the active editor's cursor.
package workspace

import (
	"context"
	"io"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/files"
	"github.com/faizmokh/jurnal/internal/journal"
)

// View is an open pane showing one document.
type View interface {
	tea.Model
	Document() *files.Document
}

// Opener builds a view for a document and its current content.
type Opener func(doc *files.Document, content string) View

// Workspace implements journal.Workspace over a vault.
type Workspace struct {
	vault  *files.Vault
	opener Opener
	logger *log.Logger

	mu    sync.Mutex
	views []View
}

// New wires a workspace. With a nil opener, documents are never shown and
// OpenInNewView does nothing.
func New(vault *files.Vault, opener Opener, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Workspace{vault: vault, opener: opener, logger: logger}
}

// Vault returns the underlying document store.
func (w *Workspace) Vault() *files.Vault {
	return w.vault
}

// SetOpener replaces how new views are built.
func (w *Workspace) SetOpener(opener Opener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opener = opener
}

// Resolve reports what exists at path.
func (w *Workspace) Resolve(ctx context.Context, path string) (files.Node, error) {
	return w.vault.Resolve(ctx, path)
}

// Create makes a new document.
func (w *Workspace) Create(ctx context.Context, path, initial string) (*files.Document, error) {
	return w.vault.Create(ctx, path, initial)
}

// Append adds text to the end of doc.
func (w *Workspace) Append(ctx context.Context, doc *files.Document, text string) error {
	return w.vault.Append(ctx, doc, text)
}

// Read returns the content of doc.
func (w *Workspace) Read(ctx context.Context, doc *files.Document) (string, error) {
	return w.vault.Read(ctx, doc)
}

// OpenInNewView shows doc in a fresh pane and makes it active. Existing panes
// on the same document are left untouched.
func (w *Workspace) OpenInNewView(ctx context.Context, doc *files.Document) error {
	w.mu.Lock()
	opener := w.opener
	w.mu.Unlock()

	if opener == nil {
		w.logger.Printf("no view configured; %s not opened", doc.Path)
		return nil
	}

	content, err := w.vault.Read(ctx, doc)
	if err != nil {
		return err
	}
	view := opener(doc, content)

	w.mu.Lock()
	w.views = append(w.views, view)
	count := len(w.views)
	w.mu.Unlock()

	w.logger.Printf("opened %s in pane %d", doc.Path, count)
	return nil
}

// ActiveEditor returns the active pane's cursor when that pane is editable.
func (w *Workspace) ActiveEditor() (journal.CursorHandle, bool) {
	handle, ok := w.Active().(journal.CursorHandle)
	return handle, ok
}

// Active returns the most recently opened pane that is still open.
func (w *Workspace) Active() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.views) == 0 {
		return nil
	}
	return w.views[len(w.views)-1]
}

// Views returns the open panes, oldest first.
func (w *Workspace) Views() []View {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]View, len(w.views))
	copy(out, w.views)
	return out
}

// Close removes a pane. The previous pane becomes active.
func (w *Workspace) Close(view View) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, v := range w.views {
		if v == view {
			w.views = append(w.views[:i], w.views[i+1:]...)
			return
		}
	}
}
