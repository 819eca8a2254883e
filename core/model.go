package core

import (
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/action"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/history"
	"github.com/quillpad/quill/tabs"
)

// Model is the root bubbletea model: the tab strip, the active editor,
// the popup screen stack and the status line. Screens and actions are
// wired in by the app layer through the Open* hooks so core stays free
// of screen imports.
type Model struct {
	width  int
	height int

	Tabs     *tabs.Manager
	Actions  *action.Registry
	Settings *config.Store
	History  *history.Store

	theme       Theme
	LineNumbers *action.BoolVar
	TabWidth    func() int

	screens   ScreenStack
	status    string
	statusErr bool
	quitting  bool

	// close/quit bookkeeping: quitPending means keep closing tabs and
	// quit once none are left unsaved; pendingClose is the tab whose
	// save-as prompt is on screen and should close after a successful
	// save.
	quitPending  bool
	pendingClose *tabs.FileTab

	// commands queued by action callbacks, drained after dispatch
	pendingCmds []tea.Cmd

	scroll map[string]int

	// Wired by the app layer.
	NewUntitled      func() *tabs.FileTab
	OpenFile         func(path string) (*tabs.FileTab, error)
	OpenPalette      func(m *Model) Screen
	OpenFilePicker   func(m *Model) Screen
	OpenSaveAs       func(m *Model, t *tabs.FileTab) Screen
	OpenConfirmClose func(m *Model, t *tabs.FileTab) Screen
}

func NewModel(manager *tabs.Manager, registry *action.Registry, settings *config.Store, hist *history.Store, theme Theme) *Model {
	return &Model{
		Tabs:     manager,
		Actions:  registry,
		Settings: settings,
		History:  hist,
		theme:    theme,
		status:   "Ready",
		scroll:   make(map[string]int),
		width:    100,
		height:   32,
		TabWidth: func() int { return 4 },
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) SetTheme(name string) {
	m.theme = ThemeByName(name)
}

func (m *Model) Theme() Theme {
	return m.theme
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

// OpenPath opens path in a new tab, or selects the already open tab
// showing the same file.
func (m *Model) OpenPath(path string) {
	if m.OpenFile == nil {
		return
	}
	ft, err := m.OpenFile(path)
	if err != nil {
		m.SetError(err)
		return
	}
	added := m.Tabs.Add(ft, true)
	if added != ft {
		m.SetStatus("Already open: " + filepath.Base(path))
		return
	}
	if m.History != nil {
		if err := m.History.Touch(path); err != nil {
			m.SetError(err)
			return
		}
	}
	m.SetStatus("Opened " + filepath.Base(path))
}

// SaveTab writes the tab to disk, prompting for a path first when the
// tab has none.
func (m *Model) SaveTab(t *tabs.FileTab) {
	err := t.Save()
	if errors.Is(err, tabs.ErrNoPath) {
		if m.OpenSaveAs != nil {
			m.screens.Push(m.OpenSaveAs(m, t))
		}
		return
	}
	if err != nil {
		m.SetError(err)
		return
	}
	m.SetStatus("Saved " + filepath.Base(t.Path()))
}

// SaveTabAs always prompts for a path.
func (m *Model) SaveTabAs(t *tabs.FileTab) {
	if m.OpenSaveAs != nil {
		m.screens.Push(m.OpenSaveAs(m, t))
	}
}

// RequestClose closes the tab if it is safe to, otherwise asks the user
// what to do with its unsaved changes.
func (m *Model) RequestClose(t tabs.Tab) {
	if t.CanClose() {
		delete(m.scroll, t.ID())
		m.Tabs.Close(t)
		return
	}
	ft, ok := t.(*tabs.FileTab)
	if !ok || m.OpenConfirmClose == nil {
		return
	}
	m.Tabs.Select(t)
	m.screens.Push(m.OpenConfirmClose(m, ft))
}

// RequestQuit starts the quit protocol: every unsaved tab gets its
// close prompt in turn, and the program exits once all are resolved.
// Cancelling any prompt abandons the quit.
func (m *Model) RequestQuit() tea.Cmd {
	m.quitPending = true
	return m.continueQuit()
}

func (m *Model) continueQuit() tea.Cmd {
	if !m.quitPending {
		return nil
	}
	for _, t := range m.Tabs.Tabs() {
		if !t.CanClose() {
			m.RequestClose(t)
			return nil
		}
	}
	m.quitting = true
	return tea.Quit
}

// resolveCloseAnswer applies the user's decision from a close prompt.
func (m *Model) resolveCloseAnswer(t *tabs.FileTab, answer tabs.CloseAnswer) tea.Cmd {
	switch answer {
	case tabs.CloseCancel:
		m.quitPending = false
		return nil
	case tabs.CloseDiscard:
		delete(m.scroll, t.ID())
		m.Tabs.Close(t)
		return m.continueQuit()
	case tabs.CloseSave:
		err := t.Save()
		if errors.Is(err, tabs.ErrNoPath) {
			m.pendingClose = t
			if m.OpenSaveAs != nil {
				m.screens.Push(m.OpenSaveAs(m, t))
			}
			return nil
		}
		if err != nil {
			m.quitPending = false
			m.SetError(err)
			return nil
		}
		delete(m.scroll, t.ID())
		m.Tabs.Close(t)
		return m.continueQuit()
	}
	return nil
}

// resolveSaveAs applies the path chosen in a save-as prompt.
func (m *Model) resolveSaveAs(t *tabs.FileTab, path string) tea.Cmd {
	if err := t.SaveAs(path); err != nil {
		m.quitPending = false
		m.pendingClose = nil
		m.SetError(err)
		return nil
	}
	m.SetStatus("Saved " + filepath.Base(t.Path()))
	if m.History != nil {
		_ = m.History.Touch(t.Path())
	}
	if m.pendingClose == t {
		m.pendingClose = nil
		delete(m.scroll, t.ID())
		m.Tabs.Close(t)
		return m.continueQuit()
	}
	return nil
}

// Enqueue defers a command from inside a synchronous action callback;
// the dispatcher returns queued commands from the current Update.
func (m *Model) Enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.pendingCmds = append(m.pendingCmds, cmd)
	}
}

func (m *Model) drainCmds() tea.Cmd {
	if len(m.pendingCmds) == 0 {
		return nil
	}
	cmds := m.pendingCmds
	m.pendingCmds = nil
	return tea.Batch(cmds...)
}

// SelectedFileTab returns the active tab when it is file backed.
func (m *Model) SelectedFileTab() *tabs.FileTab {
	ft, _ := m.Tabs.Selected().(*tabs.FileTab)
	return ft
}
