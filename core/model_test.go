package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/action"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/tabs"
)

type fakeScreen struct{ title string }

func (s *fakeScreen) Update(tea.Msg) (Screen, tea.Cmd, bool) { return s, nil, false }
func (s *fakeScreen) View(int, int) string                   { return s.title }
func (s *fakeScreen) Title() string                          { return s.title }

func newTestModel(t *testing.T) *Model {
	t.Helper()
	manager := tabs.NewManager()
	registry := action.NewRegistry(manager)
	store := config.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	m := NewModel(manager, registry, store, nil, ThemeByName("Mocha"))
	m.NewUntitled = func() *tabs.FileTab { return tabs.NewFileTab("", "", tabs.FileTabOptions{}) }
	m.OpenFile = func(path string) (*tabs.FileTab, error) { return tabs.OpenFile(path, tabs.FileTabOptions{}) }
	m.OpenSaveAs = func(*Model, *tabs.FileTab) Screen { return &fakeScreen{title: "save-as"} }
	m.OpenConfirmClose = func(*Model, *tabs.FileTab) Screen { return &fakeScreen{title: "confirm"} }
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorKeysEditTheBuffer(t *testing.T) {
	m := newTestModel(t)
	ft := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(ft, true)

	m.handleEditorKey(ft, keyRunes("hi"))
	m.handleEditorKey(ft, tea.KeyMsg{Type: tea.KeyEnter})
	m.handleEditorKey(ft, keyRunes("there"))
	if got := ft.Buffer().String(); got != "hi\nthere" {
		t.Fatalf("buffer = %q", got)
	}
	row, col := ft.Cursor()
	if row != 1 || col != 5 {
		t.Fatalf("cursor = (%d,%d), want (1,5)", row, col)
	}

	m.handleEditorKey(ft, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := ft.Buffer().String(); got != "hi\nther" {
		t.Fatalf("buffer = %q", got)
	}

	m.handleEditorKey(ft, tea.KeyMsg{Type: tea.KeyHome})
	m.handleEditorKey(ft, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := ft.Buffer().String(); got != "hither" {
		t.Fatalf("backspace at column zero should join lines, got %q", got)
	}
	row, col = ft.Cursor()
	if row != 0 || col != 2 {
		t.Fatalf("cursor after join = (%d,%d), want (0,2)", row, col)
	}
}

func TestEditorTabKeyInsertsSpaces(t *testing.T) {
	m := newTestModel(t)
	m.TabWidth = func() int { return 4 }
	ft := tabs.NewFileTab("ab", "", tabs.FileTabOptions{})
	m.Tabs.Add(ft, true)
	ft.SetCursor(0, 2)

	m.handleEditorKey(ft, tea.KeyMsg{Type: tea.KeyTab})
	if got := ft.Buffer().String(); got != "ab  " {
		t.Fatalf("buffer = %q, want padding to the next tab stop", got)
	}
}

func TestTabNavKeys(t *testing.T) {
	m := newTestModel(t)
	m.Tabs.Add(tabs.NewTextTab("a", "", ""), true)
	m.Tabs.Add(tabs.NewTextTab("b", "", ""), false)
	m.Tabs.Add(tabs.NewTextTab("c", "", ""), false)

	if !m.handleTabNav("ctrl+pgdown") || m.Tabs.SelectedIndex() != 1 {
		t.Fatalf("ctrl+pgdown: index = %d", m.Tabs.SelectedIndex())
	}
	if !m.handleTabNav("ctrl+pgup") || m.Tabs.SelectedIndex() != 0 {
		t.Fatalf("ctrl+pgup: index = %d", m.Tabs.SelectedIndex())
	}
	if !m.handleTabNav("alt+3") || m.Tabs.SelectedIndex() != 2 {
		t.Fatalf("alt+3: index = %d", m.Tabs.SelectedIndex())
	}
	if !m.handleTabNav("alt+left") {
		t.Fatal("alt+left should be consumed")
	}
	if m.Tabs.SelectedIndex() != 1 {
		t.Fatalf("move left: index = %d, want 1", m.Tabs.SelectedIndex())
	}
	if m.handleTabNav("alt+q") {
		t.Fatal("alt+q is not a tab nav key")
	}
	if m.handleTabNav("alt+0") {
		t.Fatal("tabs are numbered from one")
	}
}

func TestRequestCloseSavedTabClosesOutright(t *testing.T) {
	m := newTestModel(t)
	ft := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(ft, true)

	m.RequestClose(ft)
	if m.Tabs.Len() != 0 {
		t.Fatal("saved tab should close without a prompt")
	}
	if m.screens.Len() != 0 {
		t.Fatal("no prompt expected")
	}
}

func TestRequestCloseUnsavedTabPrompts(t *testing.T) {
	m := newTestModel(t)
	ft := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(ft, true)
	ft.Buffer().Insert(0, 0, "dirty")

	m.RequestClose(ft)
	if m.Tabs.Len() != 1 {
		t.Fatal("unsaved tab must stay open until answered")
	}
	if m.screens.Len() != 1 || m.screens.Top().Title() != "confirm" {
		t.Fatal("expected the confirm screen on top")
	}
}

func TestCloseAnswerDiscard(t *testing.T) {
	m := newTestModel(t)
	ft := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(ft, true)
	ft.Buffer().Insert(0, 0, "dirty")

	cmd := m.resolveCloseAnswer(ft, tabs.CloseDiscard)
	if m.Tabs.Len() != 0 {
		t.Fatal("discard should close the tab")
	}
	if cmd != nil {
		t.Fatal("no quit pending, no command expected")
	}
}

func TestCloseAnswerSaveWithoutPathGoesToSaveAs(t *testing.T) {
	m := newTestModel(t)
	ft := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(ft, true)
	ft.Buffer().Insert(0, 0, "dirty")

	m.resolveCloseAnswer(ft, tabs.CloseSave)
	if m.Tabs.Len() != 1 {
		t.Fatal("tab must survive until the save-as completes")
	}
	if m.screens.Len() != 1 || m.screens.Top().Title() != "save-as" {
		t.Fatal("expected the save-as screen")
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	m.resolveSaveAs(ft, path)
	if m.Tabs.Len() != 0 {
		t.Fatal("the pending close should complete after save-as")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "dirty" {
		t.Fatalf("file content = %q", raw)
	}
}

func TestQuitProtocolWalksUnsavedTabs(t *testing.T) {
	m := newTestModel(t)
	clean := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	dirty := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(clean, true)
	m.Tabs.Add(dirty, false)
	dirty.Buffer().Insert(0, 0, "dirty")

	cmd := m.RequestQuit()
	if cmd != nil {
		t.Fatal("quit must wait for the unsaved tab")
	}
	if m.screens.Len() != 1 {
		t.Fatal("expected a confirm prompt for the dirty tab")
	}
	if m.Tabs.Selected() != dirty {
		t.Fatal("the prompt should surface the tab it is about")
	}

	cmd = m.resolveCloseAnswer(dirty, tabs.CloseDiscard)
	if cmd == nil {
		t.Fatal("all tabs resolved, quit should proceed")
	}
	if !m.quitting {
		t.Fatal("model should be quitting")
	}
}

func TestQuitProtocolCancelAbandonsQuit(t *testing.T) {
	m := newTestModel(t)
	dirty := tabs.NewFileTab("", "", tabs.FileTabOptions{})
	m.Tabs.Add(dirty, true)
	dirty.Buffer().Insert(0, 0, "dirty")

	m.RequestQuit()
	m.resolveCloseAnswer(dirty, tabs.CloseCancel)
	if m.quitting {
		t.Fatal("cancel must abandon the quit")
	}
	if m.quitPending {
		t.Fatal("quit must not restart on the next close")
	}
	if m.Tabs.Len() != 1 {
		t.Fatal("the tab stays open")
	}
}

func TestViewFramesPopupWithScreenTitle(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.PushScreen(&fakeScreen{title: "Save As"})

	out := stripANSI(m.View())
	if !strings.Contains(out, " Save As ") {
		t.Fatal("popup pane should carry the screen title")
	}
	if !strings.Contains(out, "╭") {
		t.Fatal("popup should be framed")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestOpenPathDedups(t *testing.T) {
	m := newTestModel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	m.OpenPath(path)
	m.OpenPath(path)
	if m.Tabs.Len() != 1 {
		t.Fatalf("tabs = %d, want the second open deduped", m.Tabs.Len())
	}
}
