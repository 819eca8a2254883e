package textstat

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

//go:embed stopwords.txt
var stopwordsRaw string

var stopwords = func() map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(stopwordsRaw) {
		set[w] = true
	}
	return set
}()

const keywordCount = 6

// Stats summarizes one document.
type Stats struct {
	Words    int
	Distinct int
	Ranking  []WordCount
	Keywords []string
}

// Analyze tokenizes the text and builds its summary. Keywords are the
// most frequent words that are not stopwords, at most six of them.
func Analyze(text string) Stats {
	words := Tokenize(text)
	ranking := Frequencies(words)
	var keywords []string
	for _, wc := range ranking {
		if stopwords[wc.Word] {
			continue
		}
		keywords = append(keywords, wc.Word)
		if len(keywords) == keywordCount {
			break
		}
	}
	return Stats{
		Words:    len(words),
		Distinct: len(ranking),
		Ranking:  ranking,
		Keywords: keywords,
	}
}

// Report renders the summary as plain text, one ranking line per word.
func (s Stats) Report(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Statistics for %s\n\n", title)
	fmt.Fprintf(&b, "Words: %s\n", humanize.Comma(int64(s.Words)))
	fmt.Fprintf(&b, "Distinct words: %s\n", humanize.Comma(int64(s.Distinct)))
	if len(s.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(s.Keywords, ", "))
	}
	if len(s.Ranking) > 0 {
		b.WriteString("\nMost common words:\n")
		limit := len(s.Ranking)
		if limit > 20 {
			limit = 20
		}
		for _, wc := range s.Ranking[:limit] {
			fmt.Fprintf(&b, "  %-20s %s\n", wc.Word, humanize.Comma(int64(wc.Count)))
		}
	}
	return b.String()
}
