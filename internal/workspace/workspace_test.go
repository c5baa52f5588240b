package workspace

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/files"
)

type stubView struct {
	doc     *files.Document
	content string
}

func (v *stubView) Init() tea.Cmd                       { return nil }
func (v *stubView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v *stubView) View() string                        { return v.content }
func (v *stubView) Document() *files.Document           { return v.doc }

type stubEditor struct {
	stubView
	line, ch int
}

func (e *stubEditor) LastLine() int { return strings.Count(e.content, "\n") }

func (e *stubEditor) SetCursor(line, ch int) { e.line, e.ch = line, ch }

func newTestWorkspace(t *testing.T, opener Opener) *Workspace {
	t.Helper()
	vault, err := files.NewVault(t.TempDir())
	if err != nil {
		t.Fatalf("NewVault: %v", err)
	}
	return New(vault, opener, nil)
}

func editorOpener(doc *files.Document, content string) View {
	return &stubEditor{stubView: stubView{doc: doc, content: content}}
}

func previewOpener(doc *files.Document, content string) View {
	return &stubView{doc: doc, content: content}
}

func TestOpenInNewViewAlwaysAddsAPane(t *testing.T) {
	ws := newTestWorkspace(t, editorOpener)
	ctx := context.Background()

	doc, err := ws.Create(ctx, "Journal.md", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ws.Append(ctx, doc, "\n## one\n\n"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := ws.OpenInNewView(ctx, doc); err != nil {
		t.Fatalf("OpenInNewView: %v", err)
	}
	first := ws.Active()
	if err := ws.OpenInNewView(ctx, doc); err != nil {
		t.Fatalf("OpenInNewView second: %v", err)
	}

	views := ws.Views()
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	if ws.Active() == first {
		t.Fatal("second open reused the first pane")
	}
	if got := ws.Active().View(); got != "\n## one\n\n" {
		t.Fatalf("pane content = %q", got)
	}

	ws.Close(ws.Active())
	if ws.Active() != first {
		t.Fatal("closing the active pane should reveal the previous one")
	}
}

func TestActiveEditorOnlyForEditableViews(t *testing.T) {
	ctx := context.Background()

	ws := newTestWorkspace(t, previewOpener)
	if _, ok := ws.ActiveEditor(); ok {
		t.Fatal("empty workspace reported an editor")
	}

	doc, err := ws.Create(ctx, "Journal.md", "x\n")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ws.OpenInNewView(ctx, doc); err != nil {
		t.Fatalf("OpenInNewView: %v", err)
	}
	if _, ok := ws.ActiveEditor(); ok {
		t.Fatal("preview pane reported as editor")
	}

	ws.SetOpener(editorOpener)
	if err := ws.OpenInNewView(ctx, doc); err != nil {
		t.Fatalf("OpenInNewView: %v", err)
	}
	handle, ok := ws.ActiveEditor()
	if !ok {
		t.Fatal("editor pane not reported")
	}
	if handle.LastLine() != 1 {
		t.Fatalf("LastLine() = %d, want 1", handle.LastLine())
	}
}

func TestOpenWithoutOpenerIsNoop(t *testing.T) {
	ws := newTestWorkspace(t, nil)
	ctx := context.Background()

	doc, err := ws.Create(ctx, "Journal.md", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ws.OpenInNewView(ctx, doc); err != nil {
		t.Fatalf("OpenInNewView: %v", err)
	}
	if len(ws.Views()) != 0 {
		t.Fatal("views opened without an opener")
	}
}

func TestOpenMissingDocumentFails(t *testing.T) {
	ws := newTestWorkspace(t, editorOpener)

	err := ws.OpenInNewView(context.Background(), &files.Document{Path: "missing.md"})
	if err == nil {
		t.Fatal("expected read error")
	}
	if len(ws.Views()) != 0 {
		t.Fatal("pane added for unreadable document")
	}
}
