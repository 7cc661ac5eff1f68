package export

import (
	"github.com/spigell/kw-ranker/internal/injection"
	"github.com/spigell/kw-ranker/internal/keywords"
)

// Confidence labels attached to knockout detections in the summary.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// SummaryEntry is one keyword line of the run summary.
type SummaryEntry struct {
	Keyword    string                `json:"keyword"`
	Score      float64               `json:"score"`
	Type       keywords.KnockoutType `json:"type,omitempty"`
	Confidence string                `json:"confidence,omitempty"`
	Aliases    int                   `json:"aliases,omitempty"`
}

// Summary is the console digest of one analysis run.
type Summary struct {
	Knockouts []SummaryEntry `json:"knockouts"`
	TopSkills []SummaryEntry `json:"top_skills"`
}

// BuildSummary condenses the final keyword list for console display:
// knockouts with detection confidence labels plus the top skills with their
// alias counts.
func BuildSummary(list *keywords.List, topSkills int) *Summary {
	summary := &Summary{
		Knockouts: []SummaryEntry{},
		TopSkills: []SummaryEntry{},
	}

	for _, kw := range sortedKnockouts(list) {
		summary.Knockouts = append(summary.Knockouts, SummaryEntry{
			Keyword:    kw.Raw,
			Score:      kw.Score,
			Type:       kw.KnockoutType,
			Confidence: confidenceLabel(kw.Confidence),
		})
	}

	skills := sortedSkills(list)
	if topSkills > 0 && topSkills < len(skills) {
		skills = skills[:topSkills]
	}
	for _, kw := range skills {
		summary.TopSkills = append(summary.TopSkills, SummaryEntry{
			Keyword: kw.Raw,
			Score:   kw.Score,
			Aliases: len(kw.Aliases),
		})
	}

	return summary
}

func confidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return ConfidenceHigh
	case confidence >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// CoverageBySection groups injection outcomes by the resume section of the
// best match, with unmatched keywords collected under "unmatched". Entry
// order inside each section follows report order.
func CoverageBySection(reports []*injection.Report) map[string][]map[string]string {
	coverage := make(map[string][]map[string]string)
	for _, report := range reports {
		if !report.Matched {
			coverage["unmatched"] = append(coverage["unmatched"], map[string]string{
				"keyword": report.Keyword,
			})
			continue
		}

		coverage[report.Best.Section] = append(coverage[report.Best.Section], map[string]string{
			"keyword":    report.Keyword,
			"similarity": formatScore(report.Best.Similarity),
			"location":   report.Best.Location,
			"action":     report.Best.Action,
		})
	}
	return coverage
}
