// Package app wires the editor together: settings, filetypes, the tab
// manager, the action registry and the screens behind the core hooks.
package app

import (
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/action"
	"github.com/quillpad/quill/core"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/history"
	"github.com/quillpad/quill/screens"
	"github.com/quillpad/quill/tabs"
	"github.com/quillpad/quill/textstat"
	"github.com/quillpad/quill/widgets"
)

const recentLimit = 15

// Build assembles the root model. The returned cleanup runs on exit and
// persists settings.
func Build(paths []string) (*core.Model, func(), error) {
	settingsPath, err := config.DefaultPath()
	if err != nil {
		return nil, nil, fmt.Errorf("locate settings: %w", err)
	}
	store := config.NewStore(settingsPath)
	RegisterSettings(store)
	if err := store.Load(); err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	filetypesPath, err := xdg.ConfigFile("quill/filetypes.toml")
	if err != nil {
		return nil, nil, fmt.Errorf("locate filetypes: %w", err)
	}
	filetypes, err := tabs.LoadFiletypes(filetypesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load filetypes: %w", err)
	}

	historyPath, err := history.DefaultPath()
	if err != nil {
		return nil, nil, fmt.Errorf("locate history: %w", err)
	}
	hist, err := history.Open(historyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}

	general := store.Section("general")
	manager := tabs.NewManager()
	registry := action.NewRegistry(manager)

	m := core.NewModel(manager, registry, store, hist, core.ThemeByName(general.String("theme")))
	m.LineNumbers = action.NewBoolVar(general.Bool("line_numbers"))
	m.TabWidth = func() int { return general.Int("tab_width") }

	tabOpts := tabs.FileTabOptions{
		Encoding:  func() string { return general.String("encoding") },
		Filetypes: filetypes,
	}
	m.NewUntitled = func() *tabs.FileTab {
		return tabs.NewFileTab("", "", tabOpts)
	}
	m.OpenFile = func(path string) (*tabs.FileTab, error) {
		return tabs.OpenFile(path, tabOpts)
	}

	m.OpenPalette = func(model *core.Model) core.Screen {
		return screens.NewPaletteScreen(model.Actions)
	}
	m.OpenFilePicker = func(model *core.Model) core.Screen {
		recent, err := model.History.Recent(recentLimit)
		if err != nil {
			model.SetError(err)
		}
		return screens.NewOpenFileScreen(recent)
	}
	m.OpenSaveAs = func(model *core.Model, t *tabs.FileTab) core.Screen {
		return screens.NewSaveAsScreen(t)
	}
	m.OpenConfirmClose = func(model *core.Model, t *tabs.FileTab) core.Screen {
		return screens.NewConfirmCloseScreen(t)
	}

	themeVar := action.NewChoiceVar(core.ThemeByName(general.String("theme")).Name)
	themeVar.Watch(func(name string) {
		m.SetTheme(name)
		if general.String("theme") != name {
			_ = general.Set("theme", name)
		}
	})
	general.Connect("theme", func(v any) error {
		if name, ok := v.(string); ok && themeVar.Get() != name {
			themeVar.Set(name)
		}
		return nil
	}, false)

	m.LineNumbers.Watch(func(on bool) {
		if general.Bool("line_numbers") != on {
			_ = general.Set("line_numbers", on)
		}
	})

	registry.Watch(action.Observer{
		Anomaly: func(a *action.Action, detail string) {
			m.SetError(fmt.Errorf("%s: %s", a.Path(), detail))
		},
	})

	RegisterActions(m, themeVar)

	for _, p := range paths {
		m.OpenPath(p)
	}

	cleanup := func() {
		if err := store.Save(); err != nil {
			fmt.Println("save settings:", err)
		}
		_ = hist.Close()
	}
	return m, cleanup, nil
}

const chartWords = 8

// statsPage lays the report above a chart-plus-keywords row.
func statsPage(m *core.Model, stats textstat.Stats, title string) string {
	theme := m.Theme()
	bottom := widgets.HStack{
		Widgets: []widgets.Widget{
			frequencyChart(m, stats),
			widgets.Pane{
				Title:       "Keywords",
				Content:     strings.Join(stats.Keywords, "\n"),
				BorderColor: theme.Border,
				ActiveColor: theme.Accent,
				TitleColor:  theme.Accent,
				TextColor:   theme.Text,
			},
		},
		Ratios: []float64{2, 1},
		Gap:    2,
	}
	page := widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.TextBlock{Text: stats.Report(title)},
			bottom,
		},
		Ratios: []float64{3, 1},
		Gap:    1,
	}
	return page.Render(76, 40)
}

func frequencyChart(m *core.Model, stats textstat.Stats) widgets.FrequencyChart {
	n := len(stats.Ranking)
	if n > chartWords {
		n = chartWords
	}
	words := make([]string, n)
	counts := make([]float64, n)
	for i, wc := range stats.Ranking[:n] {
		words[i] = wc.Word
		counts[i] = float64(wc.Count)
	}
	return widgets.FrequencyChart{
		Words:    words,
		Counts:   counts,
		BarStyle: lipgloss.NewStyle().Foreground(m.Theme().Accent),
	}
}

func tokenDump(tokens []string) string {
	return strings.Join(tokens, "\n")
}
