package widgets

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// FrequencyChart draws word counts as horizontal bars.
type FrequencyChart struct {
	Title    string
	Words    []string
	Counts   []float64
	BarStyle lipgloss.Style
}

func (c FrequencyChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	chartHeight := height
	if c.Title != "" {
		chartHeight--
	}
	if chartHeight < 1 || len(c.Words) == 0 {
		return c.Title
	}
	bc := barchart.New(width, chartHeight, barchart.WithHorizontalBars())
	for i, word := range c.Words {
		if i >= len(c.Counts) {
			break
		}
		bc.Push(barchart.BarData{
			Label: word,
			Values: []barchart.BarValue{
				{Name: word, Value: c.Counts[i], Style: c.BarStyle},
			},
		})
	}
	bc.Draw()
	if c.Title == "" {
		return bc.View()
	}
	return c.Title + "\n" + bc.View()
}
