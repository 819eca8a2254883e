// Package screens holds the popup screens layered over the editor.
package screens

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/action"
	"github.com/quillpad/quill/core"
)

type paletteItem struct {
	path     string
	binding  string
	disabled bool
}

func (i paletteItem) Title() string {
	if i.disabled {
		return i.path + " (unavailable)"
	}
	return i.path
}

func (i paletteItem) Description() string {
	if i.binding == "" {
		return "no shortcut"
	}
	return action.ShortcutLabel(i.binding)
}

func (i paletteItem) FilterValue() string { return i.path }

// PaletteScreen is the action palette: type to rank actions by name
// similarity, enter to trigger.
type PaletteScreen struct {
	registry *action.Registry
	input    textinput.Model
	list     list.Model
}

func NewPaletteScreen(registry *action.Registry) *PaletteScreen {
	inp := textinput.New()
	inp.Placeholder = "Search actions"
	inp.Prompt = "> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	s := &PaletteScreen{registry: registry, input: inp, list: lst}
	s.refresh()
	return s
}

func (s *PaletteScreen) Title() string { return "Actions" }

func (s *PaletteScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "enter":
			if it, ok := s.list.SelectedItem().(paletteItem); ok {
				if it.disabled {
					return s, core.StatusCmd("Not available right now: " + it.path), true
				}
				path := it.path
				return s, func() tea.Msg { return core.TriggerActionMsg{Path: path} }, true
			}
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refresh()
	var cmd2 tea.Cmd
	s.list, cmd2 = s.list.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

func (s *PaletteScreen) refresh() {
	query := strings.ToLower(strings.TrimSpace(s.input.Value()))
	actions := s.registry.All()
	items := make([]paletteItem, 0, len(actions))
	for _, a := range actions {
		items = append(items, paletteItem{path: a.Path(), binding: a.Binding(), disabled: !a.Enabled()})
	}
	if query != "" {
		ranked := rankByQuery(items, query)
		items = ranked
	}
	ls := make([]list.Item, 0, len(items))
	for _, it := range items {
		ls = append(ls, it)
	}
	_ = s.list.SetItems(ls)
}

// rankByQuery orders substring matches first, then everything else by
// edit distance to the query.
func rankByQuery(items []paletteItem, query string) []paletteItem {
	type scored struct {
		item paletteItem
		sub  bool
		dist int
	}
	ranked := make([]scored, 0, len(items))
	for _, it := range items {
		lower := strings.ToLower(it.path)
		ranked = append(ranked, scored{
			item: it,
			sub:  strings.Contains(lower, query),
			dist: levenshtein.ComputeDistance(query, lower),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].sub != ranked[j].sub {
			return ranked[i].sub
		}
		return ranked[i].dist < ranked[j].dist
	})
	out := make([]paletteItem, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

func (s *PaletteScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-4))
	return "Actions\n" + s.input.View() + "\n" + s.list.View()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
