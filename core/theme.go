package core

import "github.com/charmbracelet/lipgloss"

// Theme is one named color palette. Every render path reads colors
// through the model's current theme so switching takes effect on the
// next frame.
type Theme struct {
	Name     string
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Bg       lipgloss.Color
	Mantle   lipgloss.Color
	Surface  lipgloss.Color
	Accent   lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
	TabOff   lipgloss.Color
	CursorBg lipgloss.Color
}

var themes = []Theme{
	{
		Name:     "Mocha",
		Text:     "#cdd6f4",
		Muted:    "#a6adc8",
		Border:   "#585b70",
		Bg:       "#1e1e2e",
		Mantle:   "#181825",
		Surface:  "#313244",
		Accent:   "#89b4fa",
		Success:  "#a6e3a1",
		Error:    "#f38ba8",
		TabOff:   "#7f849c",
		CursorBg: "#f5e0dc",
	},
	{
		Name:     "Latte",
		Text:     "#4c4f69",
		Muted:    "#6c6f85",
		Border:   "#acb0be",
		Bg:       "#eff1f5",
		Mantle:   "#e6e9ef",
		Surface:  "#ccd0da",
		Accent:   "#1e66f5",
		Success:  "#40a02b",
		Error:    "#d20f39",
		TabOff:   "#8c8fa1",
		CursorBg: "#dc8a78",
	},
	{
		Name:     "Frappe",
		Text:     "#c6d0f5",
		Muted:    "#a5adce",
		Border:   "#626880",
		Bg:       "#303446",
		Mantle:   "#292c3c",
		Surface:  "#414559",
		Accent:   "#8caaee",
		Success:  "#a6d189",
		Error:    "#e78284",
		TabOff:   "#838ba7",
		CursorBg: "#f2d5cf",
	},
}

// ThemeNames lists the palettes in declaration order, for the theme
// choice action.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName falls back to the first palette for unknown names.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}
