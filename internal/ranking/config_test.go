package ranking

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "weights must sum to one",
			mutate: func(c *Config) { c.Weights.TFIDF = 0.9 },
			want:   "weights must sum to 1",
		},
		{
			name:   "threshold out of range",
			mutate: func(c *Config) { c.Knockouts.ConfidenceThreshold = 1.5 },
			want:   "knockouts.confidence-threshold",
		},
		{
			name:   "negative similarity floor",
			mutate: func(c *Config) { c.Injection.SimilarityFloor = -0.1 },
			want:   "injection.similarity-floor",
		},
		{
			name:   "zero knockout cap",
			mutate: func(c *Config) { c.Knockouts.Max = 0 },
			want:   "knockouts.max",
		},
		{
			name:   "zero top skills",
			mutate: func(c *Config) { c.TopSkills = 0 },
			want:   "top-skills",
		},
		{
			name:   "zero core role weight",
			mutate: func(c *Config) { c.Roles.Core = 0 },
			want:   "roles.core",
		},
		{
			name:   "zero median multiplier",
			mutate: func(c *Config) { c.Clustering.MedianMultiplier = 0 },
			want:   "clustering.median-multiplier",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error naming %q, got %v", tc.want, err)
			}
		})
	}
}
