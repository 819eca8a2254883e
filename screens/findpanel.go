package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/find"
	"github.com/quillpad/quill/tabs"
)

// FindScreen searches the active file tab and drives replacements. The
// cursor follows matches so they stay visible when the panel closes.
type FindScreen struct {
	tab     *tabs.FileTab
	needle  textinput.Model
	replace textinput.Model
	inRepl  bool

	fullWords  bool
	ignoreCase bool

	matches []find.Match
	problem string
	note    string
}

func NewFindScreen(t *tabs.FileTab) *FindScreen {
	needle := textinput.New()
	needle.Placeholder = "find"
	needle.Prompt = "find> "
	needle.Focus()
	repl := textinput.New()
	repl.Placeholder = "replace with"
	repl.Prompt = "repl> "
	return &FindScreen{tab: t, needle: needle, replace: repl}
}

func (s *FindScreen) Title() string { return "Find" }

func (s *FindScreen) search() {
	s.problem = ""
	s.note = ""
	matches, err := find.Search(s.tab.Buffer(), s.needle.Value(), find.Options{
		FullWordsOnly: s.fullWords,
		IgnoreCase:    s.ignoreCase,
	})
	if err != nil {
		s.matches = nil
		s.problem = err.Error()
		return
	}
	s.matches = matches
}

func (s *FindScreen) gotoMatch(m find.Match) {
	s.tab.SetCursor(m.Row, m.Start)
}

func (s *FindScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.updateInputs(msg), false
	}

	switch keyMsg.String() {
	case "esc":
		return s, nil, true
	case "tab":
		s.inRepl = !s.inRepl
		if s.inRepl {
			s.needle.Blur()
			s.replace.Focus()
		} else {
			s.replace.Blur()
			s.needle.Focus()
		}
		return s, nil, false
	case "alt+w":
		s.fullWords = !s.fullWords
		s.search()
		return s, nil, false
	case "alt+c":
		s.ignoreCase = !s.ignoreCase
		s.search()
		return s, nil, false
	case "enter", "down":
		row, col := s.tab.Cursor()
		if m, ok := find.Next(s.matches, row, col); ok {
			s.gotoMatch(m)
		} else if s.problem == "" {
			s.note = "No matches"
		}
		return s, nil, false
	case "up":
		row, col := s.tab.Cursor()
		if m, ok := find.Prev(s.matches, row, col); ok {
			s.gotoMatch(m)
		} else if s.problem == "" {
			s.note = "No matches"
		}
		return s, nil, false
	case "ctrl+r":
		row, col := s.tab.Cursor()
		for _, m := range s.matches {
			if m.Row == row && m.Start == col {
				find.Replace(s.tab.Buffer(), m, s.replace.Value())
				s.search()
				s.note = "Replaced 1 occurrence"
				return s, nil, false
			}
		}
		s.note = "Cursor is not on a match"
		return s, nil, false
	case "ctrl+a":
		n := find.ReplaceAll(s.tab.Buffer(), s.matches, s.replace.Value())
		s.search()
		if n == 1 {
			s.note = "Replaced 1 occurrence"
		} else {
			s.note = fmt.Sprintf("Replaced %d occurrences", n)
		}
		return s, nil, false
	}

	cmd := s.updateInputs(msg)
	s.search()
	return s, cmd, false
}

func (s *FindScreen) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd1, cmd2 tea.Cmd
	s.needle, cmd1 = s.needle.Update(msg)
	s.replace, cmd2 = s.replace.Update(msg)
	return tea.Batch(cmd1, cmd2)
}

func (s *FindScreen) View(width, height int) string {
	status := fmt.Sprintf("%d matches", len(s.matches))
	if s.problem != "" {
		status = s.problem
	} else if s.note != "" {
		status = s.note
	}
	flags := ""
	if s.fullWords {
		flags += " [full words]"
	}
	if s.ignoreCase {
		flags += " [ignore case]"
	}
	return "Find" + flags + "\n" +
		s.needle.View() + "\n" +
		s.replace.View() + "\n\n" +
		status + "\n\n" +
		"enter/up next/prev  ctrl+r replace  ctrl+a replace all\n" +
		"alt+w full words  alt+c ignore case  esc close"
}
