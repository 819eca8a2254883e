package screens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/internal/config"
)

// FieldKind selects how a settings field is edited.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldInt
	FieldChoice
)

// Field is one editable option in the settings screen.
type Field struct {
	Section string
	Key     string
	Label   string
	Kind    FieldKind
	Choices []string
}

// SettingsScreen is a small form over the config store. Invalid values
// are rejected by the store and reported without losing the old value.
type SettingsScreen struct {
	store    *config.Store
	fields   []Field
	selected int
	editing  bool
	input    textinput.Model
	problem  string
}

func NewSettingsScreen(store *config.Store, fields []Field) *SettingsScreen {
	inp := textinput.New()
	inp.Prompt = "= "
	return &SettingsScreen{store: store, fields: fields, input: inp}
}

func (s *SettingsScreen) Title() string { return "Settings" }

func (s *SettingsScreen) current() Field { return s.fields[s.selected] }

func (s *SettingsScreen) value(f Field) string {
	sec := s.store.Section(f.Section)
	if f.Kind == FieldInt {
		return strconv.Itoa(sec.Int(f.Key))
	}
	return sec.String(f.Key)
}

func (s *SettingsScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd, false
		}
		return s, nil, false
	}

	if s.editing {
		switch keyMsg.String() {
		case "esc":
			s.editing = false
			s.input.Blur()
			return s, nil, false
		case "enter":
			s.submit()
			return s, nil, false
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, false
	}

	switch keyMsg.String() {
	case "esc", "q":
		return s, nil, true
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.fields)-1 {
			s.selected++
		}
	case "left", "h":
		s.cycleChoice(-1)
	case "right", "l":
		s.cycleChoice(1)
	case "r":
		f := s.current()
		s.store.Section(f.Section).Reset(f.Key)
		s.problem = ""
	case "enter":
		f := s.current()
		if f.Kind == FieldChoice {
			s.cycleChoice(1)
			return s, nil, false
		}
		s.editing = true
		s.problem = ""
		s.input.SetValue(s.value(f))
		s.input.CursorEnd()
		s.input.Focus()
	}
	return s, nil, false
}

func (s *SettingsScreen) cycleChoice(diff int) {
	f := s.current()
	if f.Kind != FieldChoice || len(f.Choices) == 0 {
		return
	}
	cur := s.value(f)
	idx := 0
	for i, c := range f.Choices {
		if c == cur {
			idx = i
			break
		}
	}
	idx = (idx + diff + len(f.Choices)) % len(f.Choices)
	s.apply(f, f.Choices[idx])
}

func (s *SettingsScreen) submit() {
	f := s.current()
	raw := strings.TrimSpace(s.input.Value())
	var value any = raw
	if f.Kind == FieldInt {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.problem = fmt.Sprintf("%s must be a number", f.Label)
			return
		}
		value = n
	}
	if !s.apply(f, value) {
		return
	}
	s.editing = false
	s.input.Blur()
}

func (s *SettingsScreen) apply(f Field, value any) bool {
	err := s.store.Section(f.Section).Set(f.Key, value)
	if errors.Is(err, config.ErrInvalidValue) {
		s.problem = fmt.Sprintf("%v is not a valid %s", value, strings.ToLower(f.Label))
		return false
	}
	if err != nil {
		s.problem = err.Error()
		return false
	}
	s.problem = ""
	return true
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("Settings\n\n")
	for i, f := range s.fields {
		marker := "  "
		if i == s.selected {
			marker = "> "
		}
		val := s.value(f)
		if i == s.selected && s.editing {
			val = s.input.View()
		}
		fmt.Fprintf(&b, "%s%-14s %s\n", marker, f.Label, val)
	}
	b.WriteString("\n")
	if s.problem != "" {
		b.WriteString("! " + s.problem + "\n")
	} else if s.editing {
		b.WriteString("enter apply, esc cancel\n")
	} else {
		b.WriteString("enter edit, h/l cycle, r reset, esc close\n")
	}
	return b.String()
}
