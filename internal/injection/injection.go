// Package injection finds where keywords could land in a resume. Every
// keyword variant is matched against every resume sentence, textually first
// and semantically when the text disagrees.
package injection

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spigell/kw-ranker/internal/embedding"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/resume"
)

// Suggested actions, strongest match first.
const (
	ActionContains  = "already contains keyword"
	ActionPhrase    = "may need short phrase"
	ActionNewBullet = "suggest adding new bullet"
)

// wordOverlapRatio is the share of keyword words a sentence must contain to
// count as a textual match.
const wordOverlapRatio = 0.7

// Config holds the matching thresholds.
type Config struct {
	// SimilarityFloor is the minimum best similarity for a keyword to count
	// as matched at all.
	SimilarityFloor float64 `mapstructure:"similarity-floor"`
	// PhraseThreshold upgrades a match to "may need short phrase".
	PhraseThreshold float64 `mapstructure:"phrase-threshold"`
	// ContainsThreshold upgrades a match to "already contains keyword".
	ContainsThreshold float64 `mapstructure:"contains-threshold"`
	// TieEpsilon is the similarity distance within which runner-ups are
	// reported alongside the best match.
	TieEpsilon float64 `mapstructure:"tie-epsilon"`
	// MinWordLength filters noise words out of the overlap check.
	MinWordLength int `mapstructure:"min-word-length"`
}

// Match is one candidate placement of a keyword variant in the resume.
type Match struct {
	Variant    string  `json:"variant"`
	Section    string  `json:"section"`
	Location   string  `json:"location"`
	Context    string  `json:"context"`
	Sentence   string  `json:"sentence"`
	Similarity float64 `json:"similarity"`
	Action     string  `json:"action"`
}

// Report is the injection outcome for one keyword. Matched false means no
// sentence cleared the similarity floor and Best stays nil.
type Report struct {
	Keyword string   `json:"keyword"`
	Matched bool     `json:"matched"`
	Best    *Match   `json:"best,omitempty"`
	Ties    []*Match `json:"ties,omitempty"`
}

// Analyzer matches keywords and their aliases against resume sentences.
type Analyzer struct {
	cfg Config
}

func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze embeds the corpus once and reports the best placement for every
// keyword, in list order. A nil or empty corpus yields unmatched reports.
func (a *Analyzer) Analyze(ctx context.Context, list *keywords.List, corpus *resume.Corpus, embedder embedding.Embedder) ([]*Report, error) {
	reports := make([]*Report, 0, list.Len())

	if corpus == nil || corpus.Len() == 0 {
		for _, kw := range list.Items {
			reports = append(reports, &Report{Keyword: kw.Raw})
		}
		return reports, nil
	}

	normalized := make([]string, corpus.Len())
	for i, s := range corpus.Sentences {
		normalized[i] = keywords.Normalize(s.Text)
	}

	vectors, err := embedder.EmbedTexts(ctx, corpus.Texts())
	if err != nil {
		return nil, fmt.Errorf("embedding resume sentences: %w", err)
	}

	for _, kw := range list.Items {
		report, err := a.analyzeKeyword(ctx, kw, corpus.Sentences, normalized, vectors, embedder)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// analyzeKeyword scores every variant against every sentence. A textual hit
// (containment or enough word overlap) counts as full similarity and skips
// the embedding entirely, so variants the resume spells out verbatim never
// touch the model.
func (a *Analyzer) analyzeKeyword(ctx context.Context, kw *keywords.Keyword, sentences []resume.Sentence, normalized []string, vectors [][]float32, embedder embedding.Embedder) (*Report, error) {
	variants := append([]string{kw.Raw}, kw.Aliases...)

	var candidates []*Match
	for _, variant := range variants {
		vNorm := keywords.Normalize(variant)
		if vNorm == "" {
			continue
		}
		vWords := meaningfulWords(vNorm, a.cfg.MinWordLength)

		var vVec []float32
		for i, sentence := range sentences {
			sim := 0.0
			textual := false

			switch {
			case strings.Contains(normalized[i], vNorm):
				sim, textual = 1.0, true
			case overlapRatio(vWords, normalized[i]) >= wordOverlapRatio:
				sim, textual = 1.0, true
			default:
				if vVec == nil {
					vec, err := embedder.EmbedText(ctx, variant)
					if err != nil {
						return nil, fmt.Errorf("embedding keyword %q: %w", variant, err)
					}
					vVec = vec
				}
				sim = clampSimilarity(embedding.Cosine(vVec, vectors[i]))
			}

			rounded := round3(sim)
			candidates = append(candidates, &Match{
				Variant:    variant,
				Section:    sentence.Section,
				Location:   sentence.Location,
				Context:    sentence.Context,
				Sentence:   sentence.Text,
				Similarity: rounded,
				Action:     a.classify(textual, rounded),
			})
		}
	}

	best := bestMatch(candidates)
	if best == nil || best.Similarity < a.cfg.SimilarityFloor {
		return &Report{Keyword: kw.Raw}, nil
	}

	report := &Report{Keyword: kw.Raw, Matched: true, Best: best}
	for _, m := range candidates {
		if m == best {
			continue
		}
		if best.Similarity-m.Similarity <= a.cfg.TieEpsilon {
			report.Ties = append(report.Ties, m)
		}
	}
	return report, nil
}

func (a *Analyzer) classify(textual bool, sim float64) string {
	if textual || sim >= a.cfg.ContainsThreshold {
		return ActionContains
	}
	if sim >= a.cfg.PhraseThreshold {
		return ActionPhrase
	}
	return ActionNewBullet
}

// bestMatch returns the highest similarity candidate; the first seen wins
// exact ties so the outcome is stable.
func bestMatch(candidates []*Match) *Match {
	var best *Match
	for _, m := range candidates {
		if best == nil || m.Similarity > best.Similarity {
			best = m
		}
	}
	return best
}

func meaningfulWords(text string, minLen int) []string {
	var words []string
	for _, w := range strings.Fields(text) {
		if len(w) >= minLen {
			words = append(words, w)
		}
	}
	return words
}

// overlapRatio reports the share of keyword words the sentence contains.
func overlapRatio(words []string, sentence string) float64 {
	if len(words) == 0 {
		return 0
	}

	matches := 0
	for _, w := range words {
		if strings.Contains(sentence, w) {
			matches++
		}
	}
	return float64(matches) / float64(len(words))
}

func clampSimilarity(sim float64) float64 {
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
