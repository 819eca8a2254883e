package core

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/quillpad/quill/tabs"
)

// handleEditorKey applies one key press to the active file tab's buffer
// and cursor. Keys bound to actions never reach here.
func (m *Model) handleEditorKey(ft *tabs.FileTab, msg tea.KeyMsg) {
	buf := ft.Buffer()
	row, col := ft.Cursor()

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		endRow, endCol := buf.Insert(row, col, string(msg.Runes))
		ft.SetCursor(endRow, endCol)
	case tea.KeySpace:
		endRow, endCol := buf.Insert(row, col, " ")
		ft.SetCursor(endRow, endCol)
	case tea.KeyTab:
		width := m.tabWidth()
		pad := width - col%width
		endRow, endCol := buf.Insert(row, col, strings.Repeat(" ", pad))
		ft.SetCursor(endRow, endCol)
	case tea.KeyEnter:
		endRow, endCol := buf.Insert(row, col, "\n")
		ft.SetCursor(endRow, endCol)
	case tea.KeyBackspace:
		if col > 0 {
			buf.Delete(row, col-1, row, col)
			ft.SetCursor(row, col-1)
		} else if row > 0 {
			prevLen := buf.LineLen(row - 1)
			buf.Delete(row-1, prevLen, row, 0)
			ft.SetCursor(row-1, prevLen)
		}
	case tea.KeyDelete:
		if col < buf.LineLen(row) {
			buf.Delete(row, col, row, col+1)
		} else if row < buf.LineCount()-1 {
			buf.Delete(row, col, row+1, 0)
		}
	case tea.KeyLeft:
		if col > 0 {
			ft.SetCursor(row, col-1)
		} else if row > 0 {
			ft.SetCursor(row-1, buf.LineLen(row-1))
		}
	case tea.KeyRight:
		if col < buf.LineLen(row) {
			ft.SetCursor(row, col+1)
		} else if row < buf.LineCount()-1 {
			ft.SetCursor(row+1, 0)
		}
	case tea.KeyUp:
		if row > 0 {
			ft.SetCursor(row-1, col)
		}
	case tea.KeyDown:
		if row < buf.LineCount()-1 {
			ft.SetCursor(row+1, col)
		}
	case tea.KeyHome:
		ft.SetCursor(row, 0)
	case tea.KeyEnd:
		ft.SetCursor(row, buf.LineLen(row))
	case tea.KeyPgUp:
		ft.SetCursor(max(0, row-m.pageSize()), col)
	case tea.KeyPgDown:
		ft.SetCursor(min(buf.LineCount()-1, row+m.pageSize()), col)
	}
}

func (m *Model) tabWidth() int {
	if m.TabWidth == nil {
		return 4
	}
	w := m.TabWidth()
	if w < 1 {
		return 4
	}
	return w
}

func (m *Model) pageSize() int {
	return max(1, m.bodyHeight()-1)
}

// renderEditor draws the visible window of the buffer, the cursor cell
// highlighted, with an optional line number gutter.
func (m *Model) renderEditor(ft *tabs.FileTab, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	buf := ft.Buffer()
	row, col := ft.Cursor()

	top := m.scroll[ft.ID()]
	if row < top {
		top = row
	}
	if row >= top+height {
		top = row - height + 1
	}
	if top < 0 {
		top = 0
	}
	m.scroll[ft.ID()] = top

	gutterWidth := 0
	showNumbers := m.LineNumbers != nil && m.LineNumbers.Get()
	if showNumbers {
		gutterWidth = len(fmt.Sprint(buf.LineCount())) + 1
	}
	textWidth := max(1, width-gutterWidth)

	gutterStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	textStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	cursorStyle := lipgloss.NewStyle().Foreground(m.theme.Bg).Background(m.theme.CursorBg)

	lines := make([]string, 0, height)
	for i := top; i < top+height; i++ {
		if i >= buf.LineCount() {
			lines = append(lines, "")
			continue
		}
		var line string
		if i == row {
			line = renderCursorLine(buf.Line(i), col, textWidth, textStyle, cursorStyle)
		} else {
			line = textStyle.Render(ansi.Truncate(buf.Line(i), textWidth, ""))
		}
		if showNumbers {
			num := gutterStyle.Render(fmt.Sprintf("%*d ", gutterWidth-1, i+1))
			line = num + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderCursorLine(line string, col, width int, textStyle, cursorStyle lipgloss.Style) string {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	before := string(runes[:col])
	at := " "
	after := ""
	if col < len(runes) {
		at = string(runes[col])
		after = string(runes[col+1:])
	}
	rendered := textStyle.Render(before) + cursorStyle.Render(at) + textStyle.Render(after)
	return ansi.Truncate(rendered, width, "")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
