package ranking

import "regexp"

// Pattern tables below are matched against normalized (lowercased, collapsed)
// keyword text, so none of them need case-insensitive flags.

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\+?\s*years?`),
	regexp.MustCompile(`\d+\s*[-–]\s*\d+\s*years?`),
	regexp.MustCompile(`minimum\s+\d+\s*years?`),
	regexp.MustCompile(`\d+\s*years?\s*minimum`),
	regexp.MustCompile(spelledNumbers + `\+?\s*years?`),
	regexp.MustCompile(spelledNumbers + `\s*[-–]\s*` + spelledNumbers + `\s*years?`),
	regexp.MustCompile(`minimum\s+` + spelledNumbers + `\s*years?`),
	regexp.MustCompile(spelledNumbers + `\s*years?\s*minimum`),
}

const spelledNumbers = `(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty)`

// Hard knockout patterns: degree requirements, travel requirements and
// executive title requirements are strong binary signals.
var hardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`bachelor'?s?\s*degree`),
	regexp.MustCompile(`master'?s?\s*degree`),
	regexp.MustCompile(`\bmba\b`),
	regexp.MustCompile(`\bphd\b`),
	regexp.MustCompile(`\b(bs|ms|ba|ma)\s+(degree|in)`),
	regexp.MustCompile(`degree\s+in\s+\w+`),
	regexp.MustCompile(`bachelor'?s?(?:[\s/]|in|degree)`),
	regexp.MustCompile(`master'?s?(?:[\s/]|in|degree)`),
	regexp.MustCompile(`bachelor'?s?/master'?s?`),
	regexp.MustCompile(`(bachelor'?s?|master'?s?)\s+in\s+\w+`),
	regexp.MustCompile(`(extensive|significant|frequent).*travel`),
	regexp.MustCompile(`travel.*required`),
	regexp.MustCompile(`willing to travel`),
	regexp.MustCompile(`travel.*\d+%`),
	regexp.MustCompile(`up to \d+%.*travel`),
	regexp.MustCompile(`(director|vp|vice\s+president|chief|head)\s+(of\s+)?(product|marketing)`),
}

var mediumPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(required|preferred|must\s+have).*\b(degree|education|bachelor|master|mba)`),
	regexp.MustCompile(`\b(degree|bachelor|master|mba).*(required|preferred)`),
}

// Soft skills never become knockouts no matter what else matches.
var softSkillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`leadership\s+style`),
	regexp.MustCompile(`communication\s+skills`),
	regexp.MustCompile(`strategic\s+thinking`),
	regexp.MustCompile(`problem\s+solving`),
	regexp.MustCompile(`team\s+player`),
	regexp.MustCompile(`passion`),
	regexp.MustCompile(`enthusiasm`),
	regexp.MustCompile(`mindset`),
	regexp.MustCompile(`empathy`),
	regexp.MustCompile(`collaborative`),
	regexp.MustCompile(`innovative`),
	regexp.MustCompile(`customer-obsessed`),
	regexp.MustCompile(`results-oriented`),
	regexp.MustCompile(`data-driven`),
	regexp.MustCompile(`fast-paced`),
}

var (
	numericYearsPattern  = regexp.MustCompile(`\d+\+?\s*years?`)
	degreeMentionPattern = regexp.MustCompile(`\b(degree|bachelor|master|mba|phd)\b`)

	// degreeGuardrailPattern widens the mention pattern with the fields a
	// seeded degree keyword usually names.
	degreeGuardrailPattern = regexp.MustCompile(`\b(degree|bachelor|master|mba|phd|computer\s+science)\b`)
)

var requiredLanguage = []string{"required", "must have", "minimum"}

var preferredIndicators = []string{
	"preferred", "plus", "bonus", "nice to have", "advantage",
	"desirable", "beneficial", "would be great",
}

// Generic buzzwords get dampened (or dropped on request).
var buzzwords = newSet(
	"vision", "strategy", "strategic", "roadmap", "delivery", "execution",
	"discovery", "innovation", "data-driven", "metrics", "kpis", "scalable",
	"alignment", "ownership", "stakeholders", "go-to-market", "collaboration",
	"agile", "sprint", "backlog", "prioritization", "user-centric",
	"customer-centric", "outcomes", "best practices", "cross-functional",
	"communication", "leadership", "fast-paced", "results-oriented",
	"growth hacking", "roi", "north star", "market research", "ecosystem",
)

// Overused executive phrases are penalized harder than plain buzzwords.
var executiveBuzzwords = newSet(
	"thought leadership", "best-in-class", "world-class", "cutting-edge", "bleeding-edge",
	"paradigm shift", "game-changer", "disruptive", "revolutionary", "transformational",
	"synergies", "low-hanging fruit", "move the needle", "boil the ocean", "circle back",
	"touch base", "drill down", "deep dive", "take offline", "leverage synergies",
	"actionable insights", "holistic approach", "end-to-end solution", "turn-key",
	"enterprise-grade", "mission-critical", "scalable solution", "robust framework",
	"seamless integration", "optimize efficiency", "maximize roi", "drive value",
)

// Authentic executive vocabulary gets a modest boost.
var executiveVocabulary = newSet(
	"p&l", "p&l responsibility", "revenue ownership", "business outcomes",
	"portfolio management", "cross-functional leadership", "organizational design",
	"board reporting", "investor relations", "market expansion", "acquisition integration",
	"team scaling", "hiring plans", "culture building", "succession planning",
	"executive presence", "strategic partnerships", "competitive positioning",
	"go-to-market execution", "budget ownership", "headcount planning",
	"performance management", "talent development", "executive coaching",
	"vp of product", "director of product", "head of product", "chief product officer",
	"product portfolio", "platform strategy", "product vision", "product leadership",
	"executive team", "leadership team", "senior leadership", "c-suite",
)

// compoundMultipliers are checked in order; the first phrase contained in the
// keyword wins over the word-count fallback.
var compoundMultipliers = []struct {
	phrase     string
	multiplier float64
}{
	{"saas", 1.5},
	{"product management", 1.3},
	{"b2b", 1.2},
	{"api", 1.2},
	{"platform", 1.2},
	{"growth", 1.1},
	{"leadership", 1.1},
	{"strategy", 1.1},
	{"data", 1.1},
	{"analytics", 1.1},
}

func newSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
