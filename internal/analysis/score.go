package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/kw-ranker/internal/ranking"
)

type scoreStage struct {
	buzzwords []string
}

// NewScore creates the stage that computes composite scores against the job
// posting and sorts the list best first.
func NewScore() Stage {
	return &scoreStage{}
}

func (s *scoreStage) Name() string { return "score" }

func (s *scoreStage) Disable(string) {}

func (s *scoreStage) IsEnabled() bool { return true }

func (s *scoreStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *scoreStage) Apply(_ context.Context, deps *Deps, state *State) (Step, error) {
	if deps.Posting == nil {
		return Step{}, fmt.Errorf("job posting is required for scoring")
	}

	initial := state.Keywords.Len()

	resumeText := ""
	if deps.Corpus != nil {
		resumeText = deps.Corpus.FullText()
	}

	scorer := ranking.NewScorer(deps.Config, deps.Posting, resumeText)
	kept, dropped := scorer.Score(state.Keywords)

	s.buzzwords = dropped
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("dropping buzzwords", zap.Strings("keywords", dropped))
	}

	kept.SortByScore()
	state.Keywords = kept
	state.Skipped = append(state.Skipped, dropped...)

	return Step{Initial: initial, Dropped: len(dropped), Left: kept.Len()}, nil
}

func (s *scoreStage) Status() Status {
	details := map[string]string{}
	if len(s.buzzwords) > 0 {
		details["buzzwords_dropped"] = fmt.Sprintf("%d", len(s.buzzwords))
	}
	return Status{Name: s.Name(), Enabled: true, Details: details}
}
