package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TextBlock renders pre-formatted text as a widget: lines truncated to
// the width, padded with blanks to the height.
type TextBlock struct {
	Text string
}

func (t TextBlock) Render(width, height int) string {
	lines := splitToLines(t.Text, height)
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "")
	}
	return strings.Join(lines, "\n")
}
