package report

import (
	"sort"
	"strings"
	"unicode"
)

// wordFrequency counts whitespace-separated tokens after lowercasing
// and stripping surrounding punctuation. Japanese filing text is mostly
// unsegmented, so counts there skew toward numbers and katakana terms;
// that is acceptable for a headline keyword list.
func wordFrequency(content string) map[string]int {
	counts := make(map[string]int)
	for _, token := range strings.Fields(strings.ToLower(content)) {
		word := strings.TrimFunc(token, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if len([]rune(word)) < 2 || isStopword(word) {
			continue
		}
		counts[word]++
	}
	return counts
}

// TopKeywords returns the n most frequent terms of the text, most
// frequent first. Ties break alphabetically so the output is stable.
func TopKeywords(text string, n int) []string {
	counts := wordFrequency(text)

	type kv struct {
		word  string
		count int
	}
	ranked := make([]kv, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, kv{word, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	keywords := make([]string, n)
	for i := 0; i < n; i++ {
		keywords[i] = ranked[i].word
	}
	return keywords
}

// stopwords covers high-frequency function words in the two languages
// filings arrive in.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "for": {}, "on": {},
	"is": {}, "are": {}, "as": {}, "with": {}, "by": {}, "at": {}, "or": {},
	"an": {}, "be": {}, "this": {}, "that": {}, "from": {}, "was": {}, "were": {},
	"について": {}, "における": {}, "による": {}, "および": {}, "ならびに": {},
	"または": {}, "その他": {}, "当社": {}, "当社グループ": {},
}

func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
