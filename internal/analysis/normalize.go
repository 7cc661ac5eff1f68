package analysis

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/ranking"
)

type normalizeStage struct {
	malformed  int
	duplicates int
}

// NewNormalize creates the stage that canonicalizes keyword text, drops
// malformed entries and folds duplicates into their first occurrence.
func NewNormalize() Stage {
	return &normalizeStage{}
}

func (s *normalizeStage) Name() string { return "normalize" }

func (s *normalizeStage) Disable(string) {}

func (s *normalizeStage) IsEnabled() bool { return true }

func (s *normalizeStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *normalizeStage) Apply(_ context.Context, deps *Deps, state *State) (Step, error) {
	initial := state.Keywords.Len()

	kept := &keywords.List{}
	seen := make(map[string]bool, initial)

	for _, kw := range state.Keywords.Items {
		if strings.TrimSpace(kw.Raw) == "" {
			s.malformed++
			if deps.Logger != nil {
				deps.Logger.Warn("skipping keyword entry without text")
			}
			continue
		}

		kw.Normalized = keywords.Normalize(kw.Raw)
		if seen[kw.Normalized] {
			s.duplicates++
			state.Skipped = append(state.Skipped, kw.Raw)
			if deps.Logger != nil {
				deps.Logger.Warn("skipping duplicate keyword", zap.String("keyword", kw.Raw))
			}
			continue
		}
		seen[kw.Normalized] = true

		if kw.Role == "" {
			kw.Role = deps.Config.Roles.Default
		}
		kw.ClusterID = keywords.NoCluster

		kept.Items = append(kept.Items, kw)
	}

	state.Keywords = kept

	return Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}

func (s *normalizeStage) Status() Status {
	details := map[string]string{}
	if s.malformed > 0 {
		details["malformed"] = strconv.Itoa(s.malformed)
	}
	if s.duplicates > 0 {
		details["duplicates"] = strconv.Itoa(s.duplicates)
	}
	return Status{Name: s.Name(), Enabled: true, Details: details}
}
