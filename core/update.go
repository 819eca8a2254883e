package core

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.screens.Pop()
		return m, nil
	case OpenPathMsg:
		m.OpenPath(msg.Path)
		return m, nil
	case TriggerActionMsg:
		m.Actions.Trigger(msg.Path)
		return m, m.drainCmds()
	case CloseAnswerMsg:
		return m, m.resolveCloseAnswer(msg.Tab, msg.Answer)
	case SaveAsMsg:
		return m, m.resolveSaveAs(msg.Tab, msg.Path)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if top := m.screens.Top(); top != nil {
		next, cmd, pop := top.Update(msg)
		if pop {
			m.screens.Pop()
			return m, cmd
		}
		if next != nil {
			m.screens.items[len(m.screens.items)-1] = next
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.RequestQuit()
	}

	if top := m.screens.Top(); top != nil {
		next, cmd, pop := top.Update(msg)
		if pop {
			m.screens.Pop()
			return m, cmd
		}
		if next != nil {
			m.screens.items[len(m.screens.items)-1] = next
		}
		return m, cmd
	}

	if m.Actions.HandleKey(msg.String()) {
		return m, m.drainCmds()
	}
	if handled := m.handleTabNav(msg.String()); handled {
		return m, nil
	}
	if ft := m.SelectedFileTab(); ft != nil {
		m.handleEditorKey(ft, msg)
	}
	return m, nil
}

func (m *Model) handleTabNav(key string) bool {
	switch key {
	case "ctrl+pgdown":
		if m.Tabs.Len() > 0 {
			m.Tabs.SelectAdjacent(1)
		}
		return true
	case "ctrl+pgup":
		if m.Tabs.Len() > 0 {
			m.Tabs.SelectAdjacent(-1)
		}
		return true
	case "alt+right":
		m.Tabs.MoveSelected(1)
		return true
	case "alt+left":
		m.Tabs.MoveSelected(-1)
		return true
	}
	if strings.HasPrefix(key, "alt+") {
		if n, err := strconv.Atoi(strings.TrimPrefix(key, "alt+")); err == nil && n >= 1 && n <= 9 {
			m.Tabs.SelectIndex(n - 1)
			return true
		}
	}
	return false
}
