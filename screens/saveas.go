package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/tabs"
)

// SaveAsScreen prompts for a destination path for one file tab.
type SaveAsScreen struct {
	tab   *tabs.FileTab
	input textinput.Model
}

func NewSaveAsScreen(t *tabs.FileTab) *SaveAsScreen {
	inp := textinput.New()
	inp.Placeholder = "path/to/file"
	inp.Prompt = "save> "
	inp.SetValue(t.Path())
	inp.Focus()
	return &SaveAsScreen{tab: t, input: inp}
}

func (s *SaveAsScreen) Title() string { return "Save As" }

func (s *SaveAsScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "enter":
			path := strings.TrimSpace(s.input.Value())
			if path == "" {
				return s, nil, false
			}
			return s, func() tea.Msg { return core.SaveAsMsg{Tab: s.tab, Path: path} }, true
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s *SaveAsScreen) View(width, height int) string {
	return "Save " + s.tab.Title() + " as:\n\n" + s.input.View()
}
