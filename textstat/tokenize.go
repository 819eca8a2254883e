// Package textstat tokenizes document text and summarizes word usage.
package textstat

import (
	"sort"
	"strings"
	"unicode"
)

// Tokenize splits the text into lowercase words. A word is a maximal
// run of letters; digits, punctuation and whitespace all separate.
func Tokenize(text string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			cur.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return words
}

// WordCount is one entry in a frequency ranking.
type WordCount struct {
	Word  string
	Count int
}

// Frequencies ranks words by descending count; ties order
// alphabetically.
func Frequencies(words []string) []WordCount {
	counts := make(map[string]int)
	for _, w := range words {
		counts[w]++
	}
	ranked := make([]WordCount, 0, len(counts))
	for w, n := range counts {
		ranked = append(ranked, WordCount{Word: w, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	return ranked
}
