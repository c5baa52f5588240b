package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/jurnal/internal/app"
	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/files"
	"github.com/faizmokh/jurnal/internal/journal"
)

type memStore struct {
	mu       sync.Mutex
	settings config.Settings
	saves    int
}

func (m *memStore) Load(ctx context.Context) (config.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *memStore) Save(ctx context.Context, settings config.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
	m.saves++
	return nil
}

type recordingAppender struct {
	texts []string
}

func (r *recordingAppender) Append(ctx context.Context, doc *files.Document, text string) error {
	r.texts = append(r.texts, text)
	return nil
}

func newTestApp(t *testing.T, content string) (*app.App, string) {
	t.Helper()
	vault := t.TempDir()
	if content != "" {
		if err := os.WriteFile(filepath.Join(vault, "Journal.md"), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	a, err := app.New(app.Options{
		VaultPath: vault,
		ConfigDir: t.TempDir(),
		Clock:     fixedClock(),
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	a.Workspace.SetOpener(EditorOpener(context.Background(), a.Workspace))
	return a, vault
}

func fixedClock() journal.Clock {
	return journal.FixedClock{At: time.Date(2024, time.March, 7, 9, 5, 0, 0, time.Local)}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands, returning the messages of
// the given kind.
func collect[T tea.Msg](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	var out []T
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect[T](c)...)
		}
	case T:
		out = append(out, msg)
	}
	return out
}

func TestCreateEntryPlacesCursorPastEnd(t *testing.T) {
	a, _ := newTestApp(t, "Hello\nWorld")

	out, err := a.CreateEntry(context.Background())
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if out.Cursor == nil || out.Cursor.Line != 4 || out.Cursor.Ch != 0 {
		t.Fatalf("reported cursor = %+v, want line 4 col 0", out.Cursor)
	}

	editor, ok := a.Workspace.Active().(*Editor)
	if !ok {
		t.Fatalf("active view = %T, want *Editor", a.Workspace.Active())
	}
	if want := "Hello\nWorld\n## Thursday, March 7, 2024 9:05 AM\n\n"; editor.Value() != want {
		t.Fatalf("editor value = %q, want %q", editor.Value(), want)
	}
	if line, ch := editor.Cursor(); line != 4 || ch != 0 {
		t.Fatalf("cursor = (%d, %d), want (4, 0)", line, ch)
	}
}

func TestEditorSetCursorWithinDocument(t *testing.T) {
	doc := &files.Document{Path: "Journal.md"}
	editor := NewEditor(context.Background(), doc, "alpha\nbeta\ngamma", &recordingAppender{})

	if got := editor.LastLine(); got != 2 {
		t.Fatalf("LastLine = %d, want 2", got)
	}

	editor.SetCursor(1, 2)
	if line, ch := editor.Cursor(); line != 1 || ch != 2 {
		t.Fatalf("cursor = (%d, %d), want (1, 2)", line, ch)
	}

	editor.SetCursor(0, 99)
	if line, ch := editor.Cursor(); line != 0 || ch != 5 {
		t.Fatalf("cursor = (%d, %d), want (0, 5)", line, ch)
	}

	editor.SetCursor(10, 0)
	if line, ch := editor.Cursor(); line != 2 || ch != 5 {
		t.Fatalf("cursor = (%d, %d), want (2, 5)", line, ch)
	}
}

func TestEditorSavesOnlyTypedSuffix(t *testing.T) {
	appender := &recordingAppender{}
	doc := &files.Document{Path: "Journal.md"}
	editor := NewEditor(context.Background(), doc, "## Entry\n\n", appender)

	editor.Update(runes("Ran 5k"))
	if !editor.Dirty() {
		t.Fatal("editor should be dirty after typing")
	}

	_, cmd := editor.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	saved := collect[editorSavedMsg](cmd)
	if len(saved) != 1 || saved[0].err != nil {
		t.Fatalf("save messages = %+v", saved)
	}
	editor.Update(saved[0])

	if len(appender.texts) != 1 || appender.texts[0] != "Ran 5k" {
		t.Fatalf("appended = %q, want [\"Ran 5k\"]", appender.texts)
	}
	if editor.Dirty() {
		t.Fatal("editor should be clean after saving")
	}
}

func TestEditorRefusesToRewriteEarlierText(t *testing.T) {
	appender := &recordingAppender{}
	doc := &files.Document{Path: "Journal.md"}
	editor := NewEditor(context.Background(), doc, "old entry", appender)

	editor.SetCursor(0, 0)
	editor.Update(runes("X"))

	_, cmd := editor.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("save of edited history should not produce a command")
	}
	if len(appender.texts) != 0 {
		t.Fatalf("appended = %q, want nothing", appender.texts)
	}
	if !strings.Contains(editor.View(), "read-only") {
		t.Fatalf("view missing read-only warning:\n%s", editor.View())
	}
}

func TestEditorConfirmsDiscardBeforeClosing(t *testing.T) {
	doc := &files.Document{Path: "Journal.md"}
	editor := NewEditor(context.Background(), doc, "", &recordingAppender{})
	editor.Update(runes("draft"))

	if _, cmd := editor.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Fatal("first esc on a dirty editor should only warn")
	}
	_, cmd := editor.Update(tea.KeyMsg{Type: tea.KeyEsc})
	closed := collect[CloseViewMsg](cmd)
	if len(closed) != 1 || closed[0].View != editor {
		t.Fatalf("close messages = %+v", closed)
	}
}

func TestSettingsPanelSavesEachChange(t *testing.T) {
	store := &memStore{settings: config.Defaults()}
	panel := NewSettingsPanel(context.Background(), store, config.Defaults(), false)

	_, cmd := panel.Update(runes("x"))
	for _, msg := range collect[settingsSavedMsg](cmd) {
		panel.Update(msg)
	}
	if store.saves != 1 || store.settings.JournalName != "Journalx" {
		t.Fatalf("after typing: saves=%d settings=%+v", store.saves, store.settings)
	}

	panel.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = panel.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	for _, msg := range collect[settingsSavedMsg](cmd) {
		panel.Update(msg)
	}
	if store.saves != 2 || store.settings.Locale != "en-U" || store.settings.JournalName != "Journalx" {
		t.Fatalf("after backspace: saves=%d settings=%+v", store.saves, store.settings)
	}

	_, cmd = panel.Update(tea.KeyMsg{Type: tea.KeyEsc})
	closed := collect[SettingsClosedMsg](cmd)
	if len(closed) != 1 || closed[0].Settings.JournalName != "Journalx" {
		t.Fatalf("closed messages = %+v", closed)
	}
}

func TestShellRunsCommandIntoPaneAndBack(t *testing.T) {
	a, vault := newTestApp(t, "")
	shell := NewShell(context.Background(), ShellDeps{
		Commands:  a.Commands,
		Workspace: a.Workspace,
		Store:     a.Store,
		Reader:    a.Reader,
	})

	for _, msg := range collect[recentLoadedMsg](shell.Init()) {
		shell.Update(msg)
	}
	if view := shell.View(); !strings.Contains(view, "Create journal entry") || !strings.Contains(view, "Open settings") {
		t.Fatalf("ribbon missing buttons:\n%s", view)
	}

	_, cmd := shell.Update(runes("n"))
	results := collect[commandResultMsg](cmd)
	if len(results) != 1 || results[0].err != nil {
		t.Fatalf("command results = %+v", results)
	}
	shell.Update(results[0])

	if shell.mode != modePane {
		t.Fatalf("mode = %v, want pane", shell.mode)
	}
	if _, err := os.Stat(filepath.Join(vault, "Journal.md")); err != nil {
		t.Fatalf("journal not created: %v", err)
	}

	_, cmd = shell.Update(tea.KeyMsg{Type: tea.KeyEsc})
	for _, msg := range collect[CloseViewMsg](cmd) {
		shell.Update(msg)
	}
	if shell.mode != modeHome || a.Workspace.Active() != nil {
		t.Fatalf("mode = %v active = %v, want home with no panes", shell.mode, a.Workspace.Active())
	}
}

func TestShellRibbonClickAndPalette(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.Workspace.SetOpener(nil)
	shell := NewShell(context.Background(), ShellDeps{
		Commands:  a.Commands,
		Workspace: a.Workspace,
		Store:     a.Store,
		Reader:    a.Reader,
	})

	_, cmd := shell.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if results := collect[commandResultMsg](cmd); len(results) != 1 || results[0].name != "Create journal entry" {
		t.Fatalf("ribbon click results = %+v", results)
	}

	shell.Update(runes(":"))
	for _, r := range "settings" {
		shell.Update(runes(string(r)))
	}
	if len(shell.matches) != 1 || shell.matches[0].id != settingsItemID {
		t.Fatalf("palette matches = %+v", shell.matches)
	}
	shell.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if shell.mode != modeSettings {
		t.Fatalf("mode = %v, want settings", shell.mode)
	}
}

func TestPanesQuitAfterLastClose(t *testing.T) {
	a, _ := newTestApp(t, "## Entry\n")
	a.Workspace.SetOpener(PreviewOpener())
	if _, err := a.CreateEntry(context.Background()); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	panes := NewPanes(a.Workspace)
	if !strings.Contains(panes.View(), "Journal.md (preview)") {
		t.Fatalf("panes view:\n%s", panes.View())
	}

	_, cmd := panes.Update(CloseViewMsg{View: a.Workspace.Active()})
	if quit := collect[tea.QuitMsg](cmd); len(quit) != 1 {
		t.Fatalf("expected quit after closing the last pane")
	}
}

func TestFirstEntryInEmptyVaultEndsOnLineThree(t *testing.T) {
	a, _ := newTestApp(t, "")
	ctx := context.Background()

	if _, err := a.CreateEntry(ctx); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	first := a.Workspace.Active().(*Editor)
	if want := "\n## Thursday, March 7, 2024 9:05 AM\n\n"; first.Value() != want {
		t.Fatalf("value = %q, want %q", first.Value(), want)
	}
	if line, ch := first.Cursor(); line != 3 || ch != 0 {
		t.Fatalf("cursor = (%d, %d), want (3, 0)", line, ch)
	}

	a.Clock = journal.FixedClock{At: time.Date(2024, time.March, 7, 21, 0, 0, 0, time.Local)}
	if _, err := a.CreateEntry(ctx); err != nil {
		t.Fatalf("second CreateEntry: %v", err)
	}
	second := a.Workspace.Active().(*Editor)
	if second == first {
		t.Fatal("second entry should open a new view")
	}
	if got := second.LastLine() - first.LastLine(); got != 3 {
		t.Fatalf("line count grew by %d, want 3", got)
	}
	if !strings.HasSuffix(second.Value(), "\n\n## Thursday, March 7, 2024 9:00 PM\n\n") {
		t.Fatalf("second block not appended on a new line: %q", second.Value())
	}
}

func TestEditorOnLongJournalKeepsDocumentLineNumbers(t *testing.T) {
	a, _ := newTestApp(t, strings.Repeat("line\n", 12000))

	out, err := a.CreateEntry(context.Background())
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	editor := a.Workspace.Active().(*Editor)
	if got := editor.LastLine(); got != 12003 {
		t.Fatalf("LastLine = %d, want 12003", got)
	}
	if !strings.HasSuffix(editor.Value(), "\n## Thursday, March 7, 2024 9:05 AM\n\n") {
		t.Fatalf("new heading not loaded; tail = %q", editor.Value()[len(editor.Value())-60:])
	}
	if line, ch := editor.Cursor(); line != 12003 || ch != 0 {
		t.Fatalf("cursor = (%d, %d), want (12003, 0)", line, ch)
	}
	if out.Cursor == nil || *out.Cursor != (journal.Position{Line: 12003, Ch: 0}) {
		t.Fatalf("reported cursor = %+v", out.Cursor)
	}

	editor.SetCursor(12001, 2)
	if line, ch := editor.Cursor(); line != 12001 || ch != 2 {
		t.Fatalf("cursor = (%d, %d), want (12001, 2)", line, ch)
	}
	if !strings.Contains(editor.View(), "(from line") {
		t.Fatal("view should say where the loaded window starts")
	}
}

func TestSettingsPanelConcurrentSavesKeepLatest(t *testing.T) {
	for trial := 0; trial < 5; trial++ {
		store := &memStore{settings: config.Defaults()}
		panel := NewSettingsPanel(context.Background(), store, config.Settings{Locale: "en-US"}, false)

		var cmds []tea.Cmd
		for _, r := range "Diary" {
			_, cmd := panel.Update(runes(string(r)))
			cmds = append(cmds, cmd)
		}

		var wg sync.WaitGroup
		for _, cmd := range cmds {
			wg.Add(1)
			go func(cmd tea.Cmd) {
				defer wg.Done()
				collect[settingsSavedMsg](cmd)
			}(cmd)
		}
		wg.Wait()

		if panel.Settings().JournalName != "Diary" {
			t.Fatalf("panel = %+v", panel.Settings())
		}
		stored, _ := store.Load(context.Background())
		if stored.JournalName != "Diary" {
			t.Fatalf("trial %d: store holds %q, want Diary", trial, stored.JournalName)
		}
	}
}
