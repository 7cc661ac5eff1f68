package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/kw-ranker/internal/cluster"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/ranking"
)

type trimStage struct{}

// NewTrim creates the stage that cuts low-scoring skills below the median
// threshold. Small lists pass through whole.
func NewTrim() Stage {
	return &trimStage{}
}

func (s *trimStage) Name() string { return "trim" }

func (s *trimStage) Disable(string) {}

func (s *trimStage) IsEnabled() bool { return true }

func (s *trimStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *trimStage) Apply(_ context.Context, deps *Deps, state *State) (Step, error) {
	initial := state.Keywords.Len()
	knockouts := state.Keywords.Knockouts()
	skills := state.Keywords.Skills()

	kept, trimmed := cluster.TrimByMedian(skills, deps.Config.Clustering.MedianMultiplier, deps.Config.Clustering.MinKeywords)
	if deps.Logger != nil && len(trimmed) > 0 {
		deps.Logger.Info("trimming low scoring skills", zap.Strings("keywords", trimmed))
	}

	merged := &keywords.List{}
	merged.Items = append(merged.Items, knockouts.Items...)
	merged.Items = append(merged.Items, kept.Items...)

	state.Keywords = merged
	state.Skipped = append(state.Skipped, trimmed...)

	return Step{Initial: initial, Dropped: len(trimmed), Left: merged.Len()}, nil
}
