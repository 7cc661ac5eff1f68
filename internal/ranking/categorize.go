package ranking

import (
	"strings"

	"github.com/spigell/kw-ranker/internal/keywords"
)

// Weights holds the composite score blend. The three fields must sum to 1.
type Weights struct {
	TFIDF   float64 `mapstructure:"tfidf"`
	Section float64 `mapstructure:"section"`
	Role    float64 `mapstructure:"role"`
}

// Sum reports the total blend weight. Validation requires it to be 1.
func (w Weights) Sum() float64 {
	return w.TFIDF + w.Section + w.Role
}

// RoleWeights maps a keyword's role annotation to its scoring weight.
// Unknown roles fall into the culture bucket; empty roles are rewritten to
// Default before scoring.
type RoleWeights struct {
	Core      float64 `mapstructure:"core"`
	Important float64 `mapstructure:"important"`
	Culture   float64 `mapstructure:"culture"`
	Default   string  `mapstructure:"default"`
}

// Weight returns the raw role weight for a role annotation.
func (r RoleWeights) Weight(role string) float64 {
	switch role {
	case keywords.RoleCore:
		return r.Core
	case keywords.RoleImportant:
		return r.Important
	default:
		return r.Culture
	}
}

// Signal weights for pattern-based knockout detection. A keyword becomes a
// knockout once its accumulated confidence reaches the configured threshold.
const (
	hardSignalWeight     = 0.6
	mediumSignalWeight   = 0.3
	yearsRoleWeight      = 0.4
	degreeRoleWeight     = 0.4
	requiredSignalWeight = 0.2

	yearsConfidence = 0.8
)

// Categorization is the outcome of knockout detection for one keyword.
type Categorization struct {
	Category     keywords.Category
	KnockoutType keywords.KnockoutType
	Confidence   float64
	Method       string
	YearsContext string
}

// Categorizer splits keywords into knockout requirements and rankable skills.
type Categorizer struct {
	threshold float64
	roles     RoleWeights
}

func NewCategorizer(threshold float64, roles RoleWeights) *Categorizer {
	return &Categorizer{threshold: threshold, roles: roles}
}

// Categorize decides whether a keyword is a knockout requirement. Detection
// families run in a fixed order and the first one that clears the confidence
// threshold wins; soft skills short-circuit to the skill category.
func (c *Categorizer) Categorize(kw *keywords.Keyword) Categorization {
	text := kw.Normalized

	if isSoftSkill(text) {
		return Categorization{Category: keywords.CategorySkill}
	}

	if start, end, ok := findYears(text); ok && yearsConfidence >= c.threshold {
		return Categorization{
			Category:     keywords.CategoryKnockout,
			KnockoutType: knockoutType(text),
			Confidence:   yearsConfidence,
			Method:       keywords.MethodYearsBased,
			YearsContext: yearsContext(text, start, end),
		}
	}

	if confidence := c.accumulate(text, kw.Role); confidence >= c.threshold {
		return Categorization{
			Category:     keywords.CategoryKnockout,
			KnockoutType: knockoutType(text),
			Confidence:   confidence,
			Method:       keywords.MethodPatternBased,
		}
	}

	return Categorization{Category: keywords.CategorySkill}
}

// accumulate sums the pattern-based knockout signals, capped at 1.
func (c *Categorizer) accumulate(text, role string) float64 {
	confidence := 0.0

	for _, p := range hardPatterns {
		if p.MatchString(text) {
			confidence += hardSignalWeight
			break
		}
	}
	for _, p := range mediumPatterns {
		if p.MatchString(text) {
			confidence += mediumSignalWeight
			break
		}
	}

	roleWeight := c.roles.Weight(role)
	if numericYearsPattern.MatchString(text) && roleWeight >= 1.0 {
		confidence += yearsRoleWeight
	}
	if degreeMentionPattern.MatchString(text) && roleWeight >= 1.0 {
		confidence += degreeRoleWeight
	}
	if containsAny(text, requiredLanguage) {
		confidence += requiredSignalWeight
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// knockoutType labels a knockout as preferred when the text carries a
// softening indicator, required otherwise.
func knockoutType(text string) keywords.KnockoutType {
	if containsAny(text, preferredIndicators) {
		return keywords.KnockoutPreferred
	}
	return keywords.KnockoutRequired
}

func isSoftSkill(text string) bool {
	for _, p := range softSkillPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// findYears reports the location of the first years-of-experience phrase.
func findYears(text string) (start, end int, ok bool) {
	for _, p := range yearsPatterns {
		if loc := p.FindStringIndex(text); loc != nil {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

// yearsContext extracts a window around a years match, dropping the partial
// words the window boundaries cut through.
func yearsContext(text string, start, end int) string {
	from := start - 30
	if from < 0 {
		from = 0
	}
	to := end + 30
	if to > len(text) {
		to = len(text)
	}

	window := text[from:to]
	fields := strings.Fields(window)
	if from > 0 && len(fields) > 1 && !strings.HasPrefix(window, " ") {
		fields = fields[1:]
	}
	if to < len(text) && len(fields) > 1 && !strings.HasSuffix(window, " ") {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
