package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/kw-ranker/internal/injection"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/logger"
)

// sentenceDisplayLimit keeps checklist lines scannable.
const sentenceDisplayLimit = 60

const usageNotes = `## Usage Notes

- Knockout requirements belong in the experience section, stated plainly.
- Work skills into achievements rather than listing them bare.
- Use aliases for variety instead of repeating one phrase.
- Buzzwords read best in context, not as standalone terms.
`

// Checklist renders the markdown optimization checklist: every knockout
// requirement, the top skills and the best resume placement found for each.
func Checklist(result *Result, reports []*injection.Report, topSkills int) string {
	byKeyword := make(map[string]*injection.Report, len(reports))
	for _, report := range reports {
		byKeyword[report.Keyword] = report
	}

	var b strings.Builder
	b.WriteString("# Keyword Optimization Checklist\n\n")
	b.WriteString("Use this checklist during resume editing to make sure critical keywords are included and well placed.\n\n")

	if len(result.KnockoutRequirements) > 0 {
		b.WriteString("## Knockout Requirements\n\n")
		b.WriteString("Address these before anything else.\n\n")
		for _, entry := range result.KnockoutRequirements {
			suffix := ""
			if entry.Type == keywords.KnockoutPreferred {
				suffix = " (preferred)"
			}
			fmt.Fprintf(&b, "- [ ] **%s** (score: %s)%s\n", entry.Keyword, formatScore(entry.Score), suffix)
			writeMatches(&b, byKeyword[entry.Keyword])
		}
		b.WriteString("\n")
	}

	if len(result.SkillsRanked) > 0 {
		count := len(result.SkillsRanked)
		if topSkills > 0 && topSkills < count {
			count = topSkills
		}

		fmt.Fprintf(&b, "## Top %d Skills\n\n", count)
		b.WriteString("Work these into job descriptions and achievements, highest score first.\n\n")
		for _, entry := range result.SkillsRanked[:count] {
			fmt.Fprintf(&b, "- [ ] **%s** (score: %s)", entry.Keyword, formatScore(entry.Score))
			if len(entry.Aliases) > 0 {
				fmt.Fprintf(&b, " (aliases: %s)", strings.Join(entry.Aliases, ", "))
			}
			b.WriteString("\n")
			writeMatches(&b, byKeyword[entry.Keyword])
		}
		b.WriteString("\n")
	}

	b.WriteString(usageNotes)
	return b.String()
}

// writeMatches appends the injection lines under one checklist entry. A
// missing report means the keyword was never analyzed and adds nothing; an
// unmatched one gets an explicit marker so the gap is visible.
func writeMatches(b *strings.Builder, report *injection.Report) {
	if report == nil {
		return
	}
	if !report.Matched {
		b.WriteString("  - no resume match found\n")
		return
	}

	writeMatch(b, report.Best)
	for _, tie := range report.Ties {
		writeMatch(b, tie)
	}
}

func writeMatch(b *strings.Builder, m *injection.Match) {
	location := m.Context
	if location == "" {
		location = m.Section
	}
	fmt.Fprintf(b, "  - (%s) %s: %q [%s]\n",
		formatScore(m.Similarity),
		m.Action,
		logger.Truncate(m.Sentence, sentenceDisplayLimit),
		location,
	)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
