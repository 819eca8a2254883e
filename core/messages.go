package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill/tabs"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

type PushScreenMsg struct {
	Screen Screen
}

type PopScreenMsg struct{}

// TriggerActionMsg runs the named action through the registry.
type TriggerActionMsg struct {
	Path string
}

// OpenPathMsg asks the model to open path in a file tab.
type OpenPathMsg struct {
	Path string
}

// CloseAnswerMsg carries the user's decision about an unsaved tab.
type CloseAnswerMsg struct {
	Tab    *tabs.FileTab
	Answer tabs.CloseAnswer
}

// SaveAsMsg carries the path chosen in a save-as prompt.
type SaveAsMsg struct {
	Tab  *tabs.FileTab
	Path string
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}
