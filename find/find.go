// Package find scans a buffer for matches and applies replacements. It
// backs the find/replace panel; all state lives in the caller.
package find

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/quillpad/quill/tabs"
)

// Options select how the needle is matched.
type Options struct {
	// FullWordsOnly matches the needle only at word boundaries. The
	// needle must then consist of word characters.
	FullWordsOnly bool
	IgnoreCase    bool
}

// Match is one occurrence: a row and a half-open rune-column range on
// that row.
type Match struct {
	Row   int
	Start int
	End   int
}

var nonWord = regexp.MustCompile(`\W`)

// Search returns every match in the buffer in document order. An empty
// needle matches nothing. With FullWordsOnly, a needle containing a
// non-word character is an error (the caller shows it in the panel
// status).
func Search(buf *tabs.Buffer, needle string, opts Options) ([]Match, error) {
	if needle == "" {
		return nil, nil
	}
	if opts.FullWordsOnly {
		if bad := nonWord.FindString(needle); bad != "" {
			return nil, fmt.Errorf("the search string can't contain %q when matching full words only", bad)
		}
		return regexpSearch(buf, needle, opts.IgnoreCase)
	}
	return plainSearch(buf, needle, opts.IgnoreCase)
}

func regexpSearch(buf *tabs.Buffer, needle string, ignoreCase bool) ([]Match, error) {
	pattern := `\b` + regexp.QuoteMeta(needle) + `\b`
	if ignoreCase {
		pattern = `(?i)` + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile search pattern: %w", err)
	}
	var matches []Match
	for row := 0; row < buf.LineCount(); row++ {
		line := buf.Line(row)
		for _, loc := range re.FindAllStringIndex(line, -1) {
			matches = append(matches, Match{
				Row:   row,
				Start: len([]rune(line[:loc[0]])),
				End:   len([]rune(line[:loc[1]])),
			})
		}
	}
	return matches, nil
}

// plainSearch compares rune by rune against the original line. Case
// folding happens per rune so match columns always index the line as
// stored, even for runes whose full lowercase form grows (e.g. İ).
func plainSearch(buf *tabs.Buffer, needle string, ignoreCase bool) ([]Match, error) {
	want := []rune(needle)
	if ignoreCase {
		for i, r := range want {
			want[i] = unicode.ToLower(r)
		}
	}
	var matches []Match
	for row := 0; row < buf.LineCount(); row++ {
		runes := []rune(buf.Line(row))
		for col := 0; col+len(want) <= len(runes); col++ {
			if !runesEqual(runes[col:col+len(want)], want, ignoreCase) {
				continue
			}
			matches = append(matches, Match{Row: row, Start: col, End: col + len(want)})
			col += len(want) - 1
		}
	}
	return matches, nil
}

func runesEqual(have, want []rune, ignoreCase bool) bool {
	for i, r := range want {
		h := have[i]
		if ignoreCase {
			h = unicode.ToLower(h)
		}
		if h != r {
			return false
		}
	}
	return true
}

// Next picks the first match starting after the cursor, wrapping to the
// first match at end of document. It reports false when there are no
// matches.
func Next(matches []Match, cursorRow, cursorCol int) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	for _, m := range matches {
		if m.Row > cursorRow || (m.Row == cursorRow && m.Start > cursorCol) {
			return m, true
		}
	}
	return matches[0], true
}

// Prev picks the last match starting before the cursor, wrapping to the
// last match at the beginning of the document.
func Prev(matches []Match, cursorRow, cursorCol int) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.Row < cursorRow || (m.Row == cursorRow && m.Start < cursorCol) {
			return m, true
		}
	}
	return matches[len(matches)-1], true
}

// Replace substitutes one match with replacement.
func Replace(buf *tabs.Buffer, m Match, replacement string) {
	buf.Delete(m.Row, m.Start, m.Row, m.End)
	buf.Insert(m.Row, m.Start, replacement)
}

// ReplaceAll substitutes every match, walking backwards so earlier
// positions stay valid, and returns how many were replaced.
func ReplaceAll(buf *tabs.Buffer, matches []Match, replacement string) int {
	for i := len(matches) - 1; i >= 0; i-- {
		Replace(buf, matches[i], replacement)
	}
	return len(matches)
}
