package cluster

import "github.com/spigell/kw-ranker/internal/keywords"

// TrimByMedian drops low scoring canonical skills. The cut line is the
// median score times the multiplier; when that would leave fewer than min
// keywords, the top min by score survive instead. Lists at or under min are
// returned untouched.
func TrimByMedian(skills *keywords.List, multiplier float64, min int) (*keywords.List, []string) {
	if skills.Len() <= min {
		return skills, nil
	}

	threshold := median(skills) * multiplier

	kept := &keywords.List{}
	var trimmed []string
	for _, kw := range skills.Items {
		if kw.Score >= threshold {
			kept.Items = append(kept.Items, kw)
			continue
		}
		trimmed = append(trimmed, kw.Raw)
	}

	if kept.Len() >= min {
		return kept, trimmed
	}

	// The threshold cut too deep; fall back to the top min by score.
	ranked := &keywords.List{Items: append([]*keywords.Keyword{}, skills.Items...)}
	ranked.SortByScore()
	ranked.Items = ranked.Items[:min]

	survivors := make(map[*keywords.Keyword]struct{}, min)
	for _, kw := range ranked.Items {
		survivors[kw] = struct{}{}
	}

	kept = &keywords.List{}
	trimmed = nil
	for _, kw := range skills.Items {
		if _, ok := survivors[kw]; ok {
			kept.Items = append(kept.Items, kw)
			continue
		}
		trimmed = append(trimmed, kw.Raw)
	}
	return kept, trimmed
}

// median returns the middle score, or the mean of the two middle scores for
// an even count.
func median(skills *keywords.List) float64 {
	ranked := &keywords.List{Items: append([]*keywords.Keyword{}, skills.Items...)}
	ranked.SortByScore()

	n := ranked.Len()
	if n%2 == 1 {
		return ranked.Items[n/2].Score
	}
	return (ranked.Items[n/2-1].Score + ranked.Items[n/2].Score) / 2
}
