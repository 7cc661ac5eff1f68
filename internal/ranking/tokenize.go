package ranking

import (
	"strings"
	"unicode"
)

// tokenize splits normalized text into matchable words. Tech tokens keep
// their + # . & suffixes so "c++", "node.js", "p&l" and "5+" survive as
// single words; trailing dots are stripped so sentence punctuation does not
// leak into tokens.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '&' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// countPhrase counts non-overlapping in-order occurrences of the phrase
// tokens inside the document tokens.
func countPhrase(doc, phrase []string) int {
	if len(phrase) == 0 || len(doc) < len(phrase) {
		return 0
	}

	count := 0
	for i := 0; i+len(phrase) <= len(doc); {
		if matchAt(doc, phrase, i) {
			count++
			i += len(phrase)
			continue
		}
		i++
	}
	return count
}

func matchAt(doc, phrase []string, at int) bool {
	for j, w := range phrase {
		if doc[at+j] != w {
			return false
		}
	}
	return true
}
