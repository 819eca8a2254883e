package widgets

import "strings"

// VStack stacks widgets top to bottom. Ratios weight each widget's
// share of the height; missing or non-positive weights count as one.
// Gap blank lines separate neighbors.
type VStack struct {
	Widgets []Widget
	Gap     int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	heights := splitSpans(height-v.Gap*(n-1), v.Ratios, n)
	var rows []string
	for i, w := range v.Widgets {
		if i > 0 {
			for g := 0; g < v.Gap; g++ {
				rows = append(rows, "")
			}
		}
		rows = append(rows, strings.Split(w.Render(width, heights[i]), "\n")...)
	}
	return strings.Join(rows, "\n")
}

// HStack lays widgets out left to right, each column padded to its
// span so rows stay aligned.
type HStack struct {
	Widgets []Widget
	Gap     int
	Ratios  []float64
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	widths := splitSpans(width-h.Gap*(n-1), h.Ratios, n)
	cols := make([][]string, n)
	tallest := 0
	for i, w := range h.Widgets {
		cols[i] = strings.Split(w.Render(widths[i], height), "\n")
		if len(cols[i]) > tallest {
			tallest = len(cols[i])
		}
	}
	gap := strings.Repeat(" ", h.Gap)
	rows := make([]string, tallest)
	for r := range rows {
		parts := make([]string, n)
		for i, col := range cols {
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			parts[i] = padRight(cell, widths[i])
		}
		rows[r] = strings.Join(parts, gap)
	}
	return strings.Join(rows, "\n")
}

// splitSpans divides total cells between n widgets by weight. Every
// widget gets at least one cell; leftover cells go to the front.
func splitSpans(total int, weights []float64, n int) []int {
	if n <= 0 {
		return nil
	}
	if total < n {
		total = n
	}
	w := make([]float64, n)
	var sum float64
	for i := range w {
		w[i] = 1
		if i < len(weights) && weights[i] > 0 {
			w[i] = weights[i]
		}
		sum += w[i]
	}
	out := make([]int, n)
	rest := total
	for i := range out {
		out[i] = int(w[i] / sum * float64(total))
		if out[i] < 1 {
			out[i] = 1
		}
		rest -= out[i]
	}
	for i := 0; rest > 0; i = (i + 1) % n {
		out[i]++
		rest--
	}
	return out
}
