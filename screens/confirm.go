package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/tabs"
)

// ConfirmCloseScreen asks what to do with a tab's unsaved changes.
type ConfirmCloseScreen struct {
	tab *tabs.FileTab
}

func NewConfirmCloseScreen(t *tabs.FileTab) *ConfirmCloseScreen {
	return &ConfirmCloseScreen{tab: t}
}

func (s *ConfirmCloseScreen) Title() string { return "Unsaved Changes" }

func (s *ConfirmCloseScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	answer := func(a tabs.CloseAnswer) tea.Cmd {
		return func() tea.Msg { return core.CloseAnswerMsg{Tab: s.tab, Answer: a} }
	}
	switch keyMsg.String() {
	case "s", "y", "enter":
		return s, answer(tabs.CloseSave), true
	case "d", "n":
		return s, answer(tabs.CloseDiscard), true
	case "esc", "c":
		return s, answer(tabs.CloseCancel), true
	}
	return s, nil, false
}

func (s *ConfirmCloseScreen) View(width, height int) string {
	return s.tab.Title() + " has unsaved changes.\n\n" +
		"  s  save and close\n" +
		"  d  discard changes\n" +
		"  esc  cancel"
}
