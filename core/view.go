package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/quillpad/quill/action"
	"github.com/quillpad/quill/tabs"
	"github.com/quillpad/quill/widgets"
)

func (m *Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := m.renderHeader()
	status := m.renderStatusBar()
	footer := m.renderFooter()
	bodyHeight := m.bodyHeight()

	body := m.renderBody(max(1, m.width), bodyHeight)
	if top := m.screens.Top(); top != nil && bodyHeight > 0 {
		body = widgets.RenderPopup(body, m.popupCard(top), m.width, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)

	view := strings.Join([]string{header, body, status, footer}, "\n")
	view = fitHeight(view, max(1, m.height))
	return lipgloss.NewStyle().Foreground(m.theme.Text).Width(max(1, m.width)).MaxWidth(max(1, m.width)).Render(view)
}

// popupCard frames the top screen in a pane titled after it, sized to
// the screen's content.
func (m *Model) popupCard(s Screen) string {
	content := s.View(max(20, m.width-16), max(8, m.height-10))
	lines := strings.Split(content, "\n")
	w := ansi.StringWidth(s.Title()) + 6
	for _, l := range lines {
		if lw := ansi.StringWidth(l) + 4; lw > w {
			w = lw
		}
	}
	w = min(w, max(20, m.width-8))
	h := min(len(lines)+2, max(8, m.bodyHeight()))
	pane := widgets.Pane{
		Title:       s.Title(),
		Content:     content,
		Active:      true,
		BorderColor: m.theme.Border,
		ActiveColor: m.theme.Accent,
		TitleColor:  m.theme.Accent,
		TextColor:   m.theme.Text,
	}
	return pane.Render(w, h)
}

func (m *Model) bodyHeight() int {
	h := m.height - 3
	if h < 0 {
		h = 0
	}
	return h
}

func (m *Model) renderBody(width, height int) string {
	switch t := m.Tabs.Selected().(type) {
	case *tabs.FileTab:
		return m.renderEditor(t, width, height)
	case *tabs.TextTab:
		style := lipgloss.NewStyle().Foreground(m.theme.Text)
		lines := strings.Split(t.Content(), "\n")
		for i := range lines {
			lines[i] = style.Render(ansi.Truncate(lines[i], width, ""))
		}
		if len(lines) > height {
			lines = lines[:height]
		}
		return strings.Join(lines, "\n")
	case nil:
		hint := lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render("No open files. " + action.ShortcutLabel("ctrl+n") + " for a new file, " + action.ShortcutLabel("ctrl+o") + " to open one.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, hint)
	}
	return ""
}

func (m *Model) renderHeader() string {
	items := make([]string, 0, m.Tabs.Len())
	activeStyle := lipgloss.NewStyle().Background(m.theme.Surface).Foreground(m.theme.Accent).Bold(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Background(m.theme.Mantle).Foreground(m.theme.TabOff).Padding(0, 1)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Border).Background(m.theme.Mantle)
	for i, t := range m.Tabs.Tabs() {
		label := fmt.Sprintf("%d:%s", i+1, t.Title())
		if i == m.Tabs.SelectedIndex() {
			items = append(items, activeStyle.Render(label))
		} else {
			items = append(items, inactiveStyle.Render(label))
		}
	}
	left := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Background(m.theme.Mantle).Render(" Quill ")
	right := strings.Join(items, sepStyle.Render("│"))
	right = ansi.Truncate(right, max(1, m.width), "")
	line := left + sepStyle.Render(" ") + right
	return renderBar(lipgloss.NewStyle().Background(m.theme.Mantle).Foreground(m.theme.Text), max(1, m.width), line)
}

func (m *Model) renderStatusBar() string {
	msg := strings.TrimSpace(m.status)
	if m.statusErr {
		style := lipgloss.NewStyle().Foreground(m.theme.Error).Background(m.theme.Surface)
		return renderBar(style, max(1, m.width), msg)
	}
	if t := m.Tabs.Selected(); t != nil {
		tabStatus := t.Status()
		if msg == "" {
			msg = tabStatus
		} else {
			msg = msg + "  " + tabStatus
		}
	}
	if msg == "" {
		msg = "Ready"
	}
	style := lipgloss.NewStyle().Foreground(m.theme.Success).Background(m.theme.Surface)
	return renderBar(style, max(1, m.width), msg)
}

// renderFooter shows shortcut hints for the currently enabled bound
// actions, most recently registered last.
func (m *Model) renderFooter() string {
	bg := m.theme.Mantle
	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	var parts []string
	for _, a := range m.Actions.All() {
		if a.Binding() == "" || !a.Enabled() {
			continue
		}
		name := a.Path()
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		kb := key.NewBinding(key.WithKeys(a.Binding()), key.WithHelp(action.ShortcutLabel(a.Binding()), name))
		h := kb.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = descStyle.Render("No shortcuts")
	}
	return renderBar(lipgloss.NewStyle().Background(bg), max(1, m.width), line)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
