package ranking

import (
	"sort"

	"github.com/spigell/kw-ranker/internal/keywords"
)

// ApplyDegreeGuardrail demotes degree knockouts the posting never mentions.
// A seeded education requirement with zero posting frequency is a template
// leftover, not a real gate. Returns the demoted texts.
func ApplyDegreeGuardrail(list *keywords.List) []string {
	var demoted []string
	for _, kw := range list.Items {
		if !kw.IsKnockout() || kw.TFIDF > 0 {
			continue
		}
		if degreeGuardrailPattern.MatchString(kw.Normalized) {
			kw.Demote()
			demoted = append(demoted, kw.Raw)
		}
	}
	return demoted
}

// EnforceKnockoutMaximum keeps at most limit knockouts, demoting the excess
// to skills lowest score first. Returns the demoted texts.
func EnforceKnockoutMaximum(list *keywords.List, limit int) []string {
	knockouts := list.Knockouts()
	if knockouts.Len() <= limit {
		return nil
	}

	sort.SliceStable(knockouts.Items, func(i, j int) bool {
		return knockouts.Items[i].Score > knockouts.Items[j].Score
	})

	var demoted []string
	for _, kw := range knockouts.Items[limit:] {
		kw.Demote()
		demoted = append(demoted, kw.Raw)
	}
	return demoted
}
