package catalog

import (
	"sort"
	"strings"
	"unicode"

	"dashpulse/pkg/contracts/domain"
)

// DefaultMaxWords caps a word-frequency list, matching the 100-word limit of
// the dashboard's cloud rendering.
const DefaultMaxWords = 100

// stopwords is the english stopword set applied before counting.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
		"your", "yours", "yourself", "yourselves", "he", "him", "his",
		"himself", "she", "her", "hers", "herself", "it", "its", "itself",
		"they", "them", "their", "theirs", "themselves", "what", "which",
		"who", "whom", "this", "that", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having",
		"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
		"or", "because", "as", "until", "while", "of", "at", "by", "for",
		"with", "about", "against", "between", "into", "through", "during",
		"before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further",
		"then", "once", "here", "there", "when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other",
		"some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "s", "t", "can", "will", "just", "don",
		"should", "now",
	} {
		stopwords[w] = struct{}{}
	}
}

// WordCount is one entry in a frequency list, ordered most-frequent first.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordFrequencies tokenizes the selected text column across the given
// products and returns the most frequent non-stopword terms, capped at
// maxWords. Ties order alphabetically so output is deterministic.
func WordFrequencies(products []domain.Product, column domain.TextColumn, maxWords int) []WordCount {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	counts := make(map[string]int)
	for _, p := range products {
		for _, word := range tokenize(column.Text(p)) {
			counts[word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// stopwords and single characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < 2 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		words = append(words, w)
	}
	return words
}
