package widgets

import (
	"strings"
	"testing"
)

func TestSplitSpansEvenRemainder(t *testing.T) {
	got := splitSpans(10, nil, 3)
	if got[0]+got[1]+got[2] != 10 {
		t.Fatalf("spans %v do not sum to 10", got)
	}
	if got[0] != 4 || got[1] != 3 || got[2] != 3 {
		t.Fatalf("spans = %v, want remainder given to the first", got)
	}
}

func TestSplitSpansRatios(t *testing.T) {
	got := splitSpans(12, []float64{1, 2}, 2)
	if got[0]+got[1] != 12 {
		t.Fatalf("spans %v do not sum to 12", got)
	}
	if got[1] <= got[0] {
		t.Fatalf("spans = %v, want the 2-ratio column wider", got)
	}
}

func TestVStackStacksBlocksWithGap(t *testing.T) {
	v := VStack{Widgets: []Widget{
		TextBlock{Text: "a"},
		TextBlock{Text: "b"},
	}, Gap: 1}
	out := strings.Split(v.Render(3, 5), "\n")
	if len(out) != 5 {
		t.Fatalf("stack has %d rows, want 5", len(out))
	}
	if strings.TrimSpace(out[0]) != "a" {
		t.Fatalf("first block row = %q", out[0])
	}
	if strings.TrimSpace(out[2]) != "" {
		t.Fatalf("gap row not blank: %q", out[2])
	}
	if strings.TrimSpace(out[3]) != "b" {
		t.Fatalf("second block row = %q", out[3])
	}
}

func TestPaneCarriesTitleInTopEdge(t *testing.T) {
	p := Pane{Title: "Keywords", Content: "cat\ndog"}
	out := strings.Split(p.Render(16, 4), "\n")
	top := stripANSI(out[0])
	if !strings.Contains(top, " Keywords ") {
		t.Fatalf("top edge %q misses the title", top)
	}
	if !strings.Contains(stripANSI(out[1]), "cat") {
		t.Fatalf("first content row = %q", out[1])
	}
}

func TestHStackPadsShorterColumns(t *testing.T) {
	h := HStack{Widgets: []Widget{
		VStack{Widgets: []Widget{Pane{Content: "left"}}},
		VStack{Widgets: []Widget{Pane{Content: "right\nsecond\nthird"}}},
	}, Gap: 1}
	out := h.Render(40, 8)
	lines := strings.Split(out, "\n")
	width := len([]rune(lines[0]))
	for i, line := range lines {
		if got := len([]rune(stripANSI(line))); got > 41 {
			t.Fatalf("line %d width %d exceeds layout (first line %d)", i, got, width)
		}
	}
}

func TestRenderPopupKeepsBaseAroundCard(t *testing.T) {
	base := strings.TrimRight(strings.Repeat("x", 20)+"\n", "\n")
	for i := 0; i < 9; i++ {
		base += "\n" + strings.Repeat("x", 20)
	}
	out := RenderPopup(base, "hi", 20, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("popup output has %d lines, want 10", len(lines))
	}
	if !strings.HasPrefix(stripANSI(lines[0]), "xxxx") {
		t.Fatalf("top base row was overwritten: %q", lines[0])
	}
	found := false
	for _, line := range lines {
		if strings.Contains(stripANSI(line), "hi") {
			found = true
		}
	}
	if !found {
		t.Fatal("popup content missing from composite")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
