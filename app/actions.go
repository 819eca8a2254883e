package app

import (
	"github.com/quillpad/quill/action"
	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/screens"
	"github.com/quillpad/quill/tabs"
	"github.com/quillpad/quill/textstat"
)

// RegisterActions installs the default action set. Enablement follows
// the selected tab: file actions need a file tab, close needs any tab.
func RegisterActions(m *core.Model, themeVar *action.ChoiceVar) {
	reg := m.Actions

	reg.Register(action.Spec{
		Path:    "File/New File",
		Kind:    action.KindCommand,
		Binding: "ctrl+n",
		Do: func() {
			m.Tabs.Add(m.NewUntitled(), true)
		},
	})

	reg.Register(action.Spec{
		Path:    "File/Open",
		Kind:    action.KindCommand,
		Binding: "ctrl+o",
		Do: func() {
			if m.OpenFilePicker != nil {
				m.PushScreen(m.OpenFilePicker(m))
			}
		},
	})

	reg.Register(action.Spec{
		Path:     "File/Save",
		Kind:     action.KindCommand,
		Binding:  "ctrl+s",
		TabKinds: []tabs.Kind{tabs.KindFile},
		Do: func() {
			if ft := m.SelectedFileTab(); ft != nil {
				m.SaveTab(ft)
			}
		},
	})

	reg.Register(action.Spec{
		Path:     "File/Save As",
		Kind:     action.KindCommand,
		Binding:  "alt+s",
		TabKinds: []tabs.Kind{tabs.KindFile},
		Do: func() {
			if ft := m.SelectedFileTab(); ft != nil {
				m.SaveTabAs(ft)
			}
		},
	})

	reg.Register(action.Spec{
		Path:     "File/Close",
		Kind:     action.KindCommand,
		Binding:  "ctrl+w",
		TabKinds: []tabs.Kind{tabs.KindAny},
		Do: func() {
			if t := m.Tabs.Selected(); t != nil {
				m.RequestClose(t)
			}
		},
	})

	reg.Register(action.Spec{
		Path:    "File/Quit",
		Kind:    action.KindCommand,
		Binding: "ctrl+q",
		Do: func() {
			m.Enqueue(m.RequestQuit())
		},
	})

	reg.Register(action.Spec{
		Path:     "Edit/Find and Replace",
		Kind:     action.KindCommand,
		Binding:  "ctrl+f",
		TabKinds: []tabs.Kind{tabs.KindFile},
		Do: func() {
			if ft := m.SelectedFileTab(); ft != nil {
				m.PushScreen(screens.NewFindScreen(ft))
			}
		},
	})

	reg.Register(action.Spec{
		Path: "Edit/Settings",
		Kind: action.KindCommand,
		Do: func() {
			m.PushScreen(screens.NewSettingsScreen(m.Settings, settingsFields()))
		},
	})

	reg.Register(action.Spec{
		Path: "View/Line Numbers",
		Kind: action.KindToggle,
		Bool: m.LineNumbers,
	})

	reg.Register(action.Spec{
		Path:    "View/Theme",
		Kind:    action.KindChoice,
		Choice:  themeVar,
		Choices: core.ThemeNames(),
	})

	reg.Register(action.Spec{
		Path:     "Tools/Statistics",
		Kind:     action.KindCommand,
		TabKinds: []tabs.Kind{tabs.KindFile},
		Do: func() {
			ft := m.SelectedFileTab()
			if ft == nil {
				return
			}
			stats := textstat.Analyze(ft.Buffer().String())
			page := statsPage(m, stats, ft.Title())
			m.Tabs.Add(tabs.NewTextTab("Stats: "+ft.Title(), "Statistics", page), true)
		},
	})

	reg.Register(action.Spec{
		Path:     "Tools/Tokens",
		Kind:     action.KindCommand,
		TabKinds: []tabs.Kind{tabs.KindFile},
		Do: func() {
			ft := m.SelectedFileTab()
			if ft == nil {
				return
			}
			tokens := ft.Tokens()
			if len(tokens) == 0 {
				tokens = textstat.Tokenize(ft.Buffer().String())
				ft.SetTokens(tokens)
			}
			m.Tabs.Add(tabs.NewTextTab("Tokens: "+ft.Title(), "Token dump", tokenDump(tokens)), true)
		},
	})

	reg.Register(action.Spec{
		Path:    "Tools/Action Search",
		Kind:    action.KindCommand,
		Binding: "ctrl+p",
		Do: func() {
			if m.OpenPalette != nil {
				m.PushScreen(m.OpenPalette(m))
			}
		},
	})
}
