package ranking

import (
	"fmt"
	"math"

	"github.com/spigell/kw-ranker/internal/cluster"
	"github.com/spigell/kw-ranker/internal/injection"
	"github.com/spigell/kw-ranker/internal/keywords"
)

// weightSumTolerance absorbs float drift when checking that the composite
// blend sums to 1.
const weightSumTolerance = 1e-9

// Config is the full analysis configuration. It is decoded once at startup,
// validated once, and treated as read-only by every pipeline stage.
type Config struct {
	Weights       Weights          `mapstructure:"weights"`
	Roles         RoleWeights      `mapstructure:"roles"`
	Knockouts     KnockoutConfig   `mapstructure:"knockouts"`
	Clustering    cluster.Config   `mapstructure:"clustering"`
	Injection     injection.Config `mapstructure:"injection"`
	TopSkills     int              `mapstructure:"top-skills"`
	DropBuzzwords bool             `mapstructure:"drop-buzzwords"`
}

// KnockoutConfig controls knockout detection and the guardrail cap.
type KnockoutConfig struct {
	// ConfidenceThreshold is the accumulated confidence a keyword needs to
	// become a knockout requirement.
	ConfidenceThreshold float64 `mapstructure:"confidence-threshold"`
	// Max caps how many knockouts survive the guardrails. Overflow is
	// demoted to skills, lowest score first.
	Max int `mapstructure:"max"`
}

// DefaultConfig returns the configuration used when the config file leaves
// analysis settings out.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{TFIDF: 0.55, Section: 0.25, Role: 0.20},
		Roles: RoleWeights{
			Core:      1.2,
			Important: 0.6,
			Culture:   0.3,
			Default:   keywords.RoleCore,
		},
		Knockouts: KnockoutConfig{
			ConfidenceThreshold: 0.6,
			Max:                 5,
		},
		Clustering: cluster.Config{
			SimilarityThreshold: 0.5,
			MedianMultiplier:    1.2,
			MinKeywords:         10,
		},
		Injection: injection.Config{
			SimilarityFloor:   0.3,
			PhraseThreshold:   0.7,
			ContainsThreshold: 0.8,
			TieEpsilon:        0.01,
			MinWordLength:     3,
		},
		TopSkills: 5,
	}
}

// Validate checks every knob once. Errors name the offending config key so a
// broken file is fixable without reading code.
func (c *Config) Validate() error {
	if diff := math.Abs(c.Weights.Sum() - 1); diff > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", c.Weights.Sum())
	}

	ratios := []struct {
		key   string
		value float64
	}{
		{"weights.tfidf", c.Weights.TFIDF},
		{"weights.section", c.Weights.Section},
		{"weights.role", c.Weights.Role},
		{"knockouts.confidence-threshold", c.Knockouts.ConfidenceThreshold},
		{"clustering.similarity-threshold", c.Clustering.SimilarityThreshold},
		{"injection.similarity-floor", c.Injection.SimilarityFloor},
		{"injection.phrase-threshold", c.Injection.PhraseThreshold},
		{"injection.contains-threshold", c.Injection.ContainsThreshold},
		{"injection.tie-epsilon", c.Injection.TieEpsilon},
	}
	for _, r := range ratios {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", r.key, r.value)
		}
	}

	if c.Roles.Core <= 0 {
		return fmt.Errorf("roles.core must be positive, got %v", c.Roles.Core)
	}
	if c.Roles.Important < 0 {
		return fmt.Errorf("roles.important must not be negative, got %v", c.Roles.Important)
	}
	if c.Roles.Culture < 0 {
		return fmt.Errorf("roles.culture must not be negative, got %v", c.Roles.Culture)
	}

	positives := []struct {
		key   string
		value int
	}{
		{"knockouts.max", c.Knockouts.Max},
		{"clustering.min-keywords", c.Clustering.MinKeywords},
		{"injection.min-word-length", c.Injection.MinWordLength},
		{"top-skills", c.TopSkills},
	}
	for _, p := range positives {
		if p.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", p.key, p.value)
		}
	}

	if c.Clustering.MedianMultiplier <= 0 {
		return fmt.Errorf("clustering.median-multiplier must be positive, got %v", c.Clustering.MedianMultiplier)
	}

	return nil
}
