package find

import (
	"strings"
	"testing"

	"github.com/quillpad/quill/tabs"
)

func TestSearchPlain(t *testing.T) {
	buf := tabs.NewBuffer("this asd is asd\nasd world")
	matches, err := Search(buf, "asd", Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Match{{0, 5, 8}, {0, 12, 15}, {1, 0, 3}}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("match %d = %v, want %v", i, matches[i], want[i])
		}
	}
}

func TestSearchEmptyNeedle(t *testing.T) {
	buf := tabs.NewBuffer("anything")
	matches, err := Search(buf, "", Options{})
	if err != nil || matches != nil {
		t.Fatalf("empty needle: matches=%v err=%v", matches, err)
	}
}

func TestSearchIgnoreCase(t *testing.T) {
	buf := tabs.NewBuffer("Frog frog FROG")
	matches, err := Search(buf, "frog", Options{IgnoreCase: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("matches = %v, want 3 of them", matches)
	}
}

func TestSearchIgnoreCaseKeepsOriginalColumns(t *testing.T) {
	// İ's full lowercase form is two runes; folding must not shift the
	// reported columns off the stored line.
	buf := tabs.NewBuffer("AİB ab")
	matches, err := Search(buf, "b", Options{IgnoreCase: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []Match{{0, 2, 3}, {0, 5, 6}}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("match %d = %v, want %v", i, matches[i], want[i])
		}
	}

	Replace(buf, matches[0], "x")
	if got := buf.Line(0); got != "Aİx ab" {
		t.Fatalf("replace landed at the wrong spot: %q", got)
	}
}

func TestSearchFullWordsOnly(t *testing.T) {
	buf := tabs.NewBuffer("asd asdf basd asd")
	matches, err := Search(buf, "asd", Options{FullWordsOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []Match{{0, 0, 3}, {0, 14, 17}}
	if len(matches) != 2 || matches[0] != want[0] || matches[1] != want[1] {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
}

func TestSearchFullWordsRejectsNonWordNeedle(t *testing.T) {
	buf := tabs.NewBuffer("a+b")
	_, err := Search(buf, "a+b", Options{FullWordsOnly: true})
	if err == nil {
		t.Fatal("expected an error for a non-word needle")
	}
	if !strings.Contains(err.Error(), "full words only") {
		t.Fatalf("err = %v", err)
	}
}

func TestSearchCountsColumnsInRunes(t *testing.T) {
	buf := tabs.NewBuffer("café café")
	matches, err := Search(buf, "café", Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Match{{0, 0, 4}, {0, 5, 9}}
	if len(matches) != 2 || matches[0] != want[0] || matches[1] != want[1] {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
}

func TestNextWrapsAroundFromCursor(t *testing.T) {
	matches := []Match{{0, 2, 5}, {1, 0, 3}, {3, 4, 7}}

	m, ok := Next(matches, 0, 2)
	if !ok || m != (Match{1, 0, 3}) {
		t.Fatalf("next from (0,2) = %v", m)
	}
	m, ok = Next(matches, 3, 4)
	if !ok || m != (Match{0, 2, 5}) {
		t.Fatalf("next past the last match should wrap, got %v", m)
	}
	if _, ok := Next(nil, 0, 0); ok {
		t.Fatal("no matches means no next")
	}
}

func TestPrevWrapsAroundFromCursor(t *testing.T) {
	matches := []Match{{0, 2, 5}, {1, 0, 3}, {3, 4, 7}}

	m, ok := Prev(matches, 1, 0)
	if !ok || m != (Match{0, 2, 5}) {
		t.Fatalf("prev from (1,0) = %v", m)
	}
	m, ok = Prev(matches, 0, 0)
	if !ok || m != (Match{3, 4, 7}) {
		t.Fatalf("prev before the first match should wrap, got %v", m)
	}
}

func TestReplaceAllWalksBackwards(t *testing.T) {
	buf := tabs.NewBuffer("asd asd\nasd")
	matches, err := Search(buf, "asd", Options{})
	if err != nil {
		t.Fatal(err)
	}
	n := ReplaceAll(buf, matches, "toot")
	if n != 3 {
		t.Fatalf("replaced %d, want 3", n)
	}
	if got := buf.String(); got != "toot toot\ntoot" {
		t.Fatalf("content = %q", got)
	}
}

func TestReplaceSingleMatch(t *testing.T) {
	buf := tabs.NewBuffer("hello world")
	Replace(buf, Match{0, 6, 11}, "there")
	if got := buf.String(); got != "hello there" {
		t.Fatalf("content = %q", got)
	}
}
