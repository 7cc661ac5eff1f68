package keywords

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical matching form of a keyword or sentence:
// NFKC folding, lowercase, collapsed whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
