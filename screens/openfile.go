package screens

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/core"
)

type recentItem struct {
	path    string
	missing bool
}

func (i recentItem) Title() string {
	if i.missing {
		return filepath.Base(i.path) + " (missing)"
	}
	return filepath.Base(i.path)
}
func (i recentItem) Description() string { return i.path }
func (i recentItem) FilterValue() string { return i.path }

// OpenFileScreen prompts for a path, offering recently opened files
// below the input.
type OpenFileScreen struct {
	input  textinput.Model
	recent list.Model
	all    []recentItem
}

func NewOpenFileScreen(recentPaths []string) *OpenFileScreen {
	inp := textinput.New()
	inp.Placeholder = "path/to/file"
	inp.Prompt = "open> "
	inp.Focus()
	items := make([]recentItem, 0, len(recentPaths))
	for _, p := range recentPaths {
		_, err := os.Stat(p)
		items = append(items, recentItem{path: p, missing: err != nil})
	}
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 12)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	s := &OpenFileScreen{input: inp, recent: lst, all: items}
	s.refresh()
	return s
}

func (s *OpenFileScreen) Title() string { return "Open File" }

func (s *OpenFileScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "enter":
			if path := strings.TrimSpace(s.input.Value()); path != "" {
				return s, func() tea.Msg { return core.OpenPathMsg{Path: path} }, true
			}
			if it, ok := s.recent.SelectedItem().(recentItem); ok {
				return s, func() tea.Msg { return core.OpenPathMsg{Path: it.path} }, true
			}
			return s, nil, true
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refresh()
	var cmd2 tea.Cmd
	s.recent, cmd2 = s.recent.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

func (s *OpenFileScreen) refresh() {
	query := strings.ToLower(strings.TrimSpace(s.input.Value()))
	ls := make([]list.Item, 0, len(s.all))
	for _, it := range s.all {
		if query != "" && !strings.Contains(strings.ToLower(it.path), query) {
			continue
		}
		ls = append(ls, it)
	}
	_ = s.recent.SetItems(ls)
}

func (s *OpenFileScreen) View(width, height int) string {
	s.recent.SetWidth(width)
	s.recent.SetHeight(max(4, height-4))
	return "Open File\n" + s.input.View() + "\n\nRecent files:\n" + s.recent.View()
}
