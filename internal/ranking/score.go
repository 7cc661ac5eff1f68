package ranking

import (
	"math"
	"strings"

	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/posting"
)

// Enhancement factors multiply the composite after the weighted blend, so
// the final score needs a clamp back into [0, 1].
const (
	titleAffinityBoost   = 1.2
	executiveBoost       = 1.15
	executivePenalty     = 0.8
	buzzwordPenalty      = 0.7
	yearsExperienceFloor = 0.9
	titleRegionWords     = 150
)

// Word-count fallback multipliers for compound keywords that contain no
// known domain phrase.
const (
	singleWordMultiplier = 1.0
	twoWordMultiplier    = 1.3
	longPhraseMultiplier = 1.5
)

// sectionBoosts maps a posting section to the boost a keyword earns by
// appearing there.
var sectionBoosts = map[string]float64{
	posting.SectionTitle:            1.0,
	posting.SectionRequirements:     0.8,
	posting.SectionResponsibilities: 0.8,
	posting.SectionCompany:          0.3,
}

// scoredLine is a posting line normalized once per run.
type scoredLine struct {
	text  string
	boost float64
}

// Scorer computes composite keyword scores against one job posting and the
// optional resume document. All matching runs on normalized text.
type Scorer struct {
	cfg           *Config
	lines         []scoredLine
	title         string
	titleRegion   string
	postingTokens []string
	resumeTokens  []string
	hasResume     bool
}

// NewScorer tokenizes the posting and resume once. resumeText may be empty
// when no resume is configured; TF-IDF then runs on the posting alone.
func NewScorer(cfg *Config, doc *posting.Document, resumeText string) *Scorer {
	s := &Scorer{
		cfg:           cfg,
		title:         keywords.Normalize(doc.Title),
		titleRegion:   keywords.Normalize(doc.FirstWords(titleRegionWords)),
		postingTokens: tokenize(keywords.Normalize(doc.Text)),
	}

	for _, line := range doc.Lines {
		s.lines = append(s.lines, scoredLine{
			text:  keywords.Normalize(line.Text),
			boost: sectionBoosts[line.Section],
		})
	}

	if strings.TrimSpace(resumeText) != "" {
		s.hasResume = true
		s.resumeTokens = tokenize(keywords.Normalize(resumeText))
	}

	return s
}

// Score fills the TF-IDF, section, role and composite fields of every
// keyword, then applies the multiplicative enhancements and the buzzword
// policy. It returns the surviving keywords in input order plus the texts
// dropped by the buzzword filter.
func (s *Scorer) Score(list *keywords.List) (*keywords.List, []string) {
	tfidf := s.tfidfVector(list)

	kept := &keywords.List{}
	var dropped []string

	for i, kw := range list.Items {
		section := s.sectionBoost(kw.Normalized)
		role := s.roleWeight(kw.Role)

		kw.TFIDF = round3(tfidf[i])
		kw.SectionBoost = round3(section)
		kw.RoleWeight = round3(role)

		score := s.cfg.Weights.TFIDF*tfidf[i] +
			s.cfg.Weights.Section*section +
			s.cfg.Weights.Role*role

		score *= s.titleAffinity(kw.Normalized)
		score *= compoundMultiplier(kw.Normalized)
		score *= executiveAdjustment(kw.Normalized)

		if inSet(buzzwords, kw.Normalized) {
			kw.Buzzword = true
			if s.cfg.DropBuzzwords {
				dropped = append(dropped, kw.Raw)
				continue
			}
			score *= buzzwordPenalty
		}

		kw.Score = round3(clamp01(score))
		kept.Items = append(kept.Items, kw)
	}

	return kept, dropped
}

// tfidfVector computes the L2-normalized TF-IDF of each keyword phrase over
// the posting/resume mini-corpus. Keywords the resume already covers score
// slightly lower than uncovered ones.
func (s *Scorer) tfidfVector(list *keywords.List) []float64 {
	raw := make([]float64, list.Len())
	if len(s.postingTokens) == 0 {
		return raw
	}

	docs := 1.0
	if s.hasResume {
		docs = 2.0
	}

	var sumSquares float64
	for i, kw := range list.Items {
		phrase := tokenize(kw.Normalized)
		count := countPhrase(s.postingTokens, phrase)
		if count == 0 {
			continue
		}

		df := 1.0
		if s.hasResume && countPhrase(s.resumeTokens, phrase) > 0 {
			df = 2.0
		}

		tf := float64(count) / float64(len(s.postingTokens))
		raw[i] = tf * (1 + math.Log(docs/df))
		sumSquares += raw[i] * raw[i]
	}

	if sumSquares == 0 {
		return raw
	}
	norm := math.Sqrt(sumSquares)
	for i := range raw {
		raw[i] /= norm
	}
	return raw
}

// sectionBoost returns the strongest section signal for a keyword: presence
// in the title region counts as the title section, otherwise the best line
// the keyword appears in. Tenure keywords keep a floor so experience
// requirements never sink on placement alone.
func (s *Scorer) sectionBoost(text string) float64 {
	boost := 0.0

	if s.titleRegion != "" && strings.Contains(s.titleRegion, text) {
		boost = sectionBoosts[posting.SectionTitle]
	}

	for _, line := range s.lines {
		if line.boost <= boost {
			continue
		}
		if strings.Contains(line.text, text) {
			boost = line.boost
		}
	}

	if strings.Contains(text, "years") || strings.Contains(text, "experience") {
		if boost < yearsExperienceFloor {
			boost = yearsExperienceFloor
		}
	}

	return boost
}

// roleWeight normalizes the configured role weight by the core weight so the
// composite term stays in [0, 1].
func (s *Scorer) roleWeight(role string) float64 {
	return s.cfg.Roles.Weight(role) / s.cfg.Roles.Core
}

// titleAffinity boosts keywords overlapping the posting title in either
// direction.
func (s *Scorer) titleAffinity(text string) float64 {
	if s.title == "" {
		return 1.0
	}
	if strings.Contains(s.title, text) || strings.Contains(text, s.title) {
		return titleAffinityBoost
	}
	return 1.0
}

// compoundMultiplier rewards compound domain phrases. A known phrase wins
// over the plain word-count fallback.
func compoundMultiplier(text string) float64 {
	for _, cm := range compoundMultipliers {
		if strings.Contains(text, cm.phrase) {
			return cm.multiplier
		}
	}

	switch words := len(strings.Fields(text)); {
	case words >= 3:
		return longPhraseMultiplier
	case words == 2:
		return twoWordMultiplier
	default:
		return singleWordMultiplier
	}
}

// executiveAdjustment boosts authentic executive vocabulary and penalizes
// executive buzzword bingo.
func executiveAdjustment(text string) float64 {
	if inSet(executiveVocabulary, text) {
		return executiveBoost
	}
	if inSet(executiveBuzzwords, text) {
		return executivePenalty
	}
	return 1.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round3 keeps exported scores stable across runs and platforms.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
