package analysis

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/kw-ranker/internal/ranking"
)

type guardrailsStage struct {
	degree   []string
	overflow []string
}

// NewGuardrails creates the stage that demotes doubtful knockouts back to
// skills: degree requirements the posting never mentions and everything over
// the knockout cap.
func NewGuardrails() Stage {
	return &guardrailsStage{}
}

func (s *guardrailsStage) Name() string { return "guardrails" }

func (s *guardrailsStage) Disable(string) {}

func (s *guardrailsStage) IsEnabled() bool { return true }

func (s *guardrailsStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *guardrailsStage) Apply(_ context.Context, deps *Deps, state *State) (Step, error) {
	initial := state.Keywords.Len()

	s.degree = ranking.ApplyDegreeGuardrail(state.Keywords)
	if deps.Logger != nil && len(s.degree) > 0 {
		deps.Logger.Info("demoting degree requirements absent from the posting",
			zap.Strings("keywords", s.degree),
		)
	}

	s.overflow = ranking.EnforceKnockoutMaximum(state.Keywords, deps.Config.Knockouts.Max)
	if deps.Logger != nil && len(s.overflow) > 0 {
		deps.Logger.Info("demoting knockouts over the cap",
			zap.Int("max", deps.Config.Knockouts.Max),
			zap.Strings("keywords", s.overflow),
		)
	}

	// Demotions change categories, never the list length.
	return Step{Initial: initial, Dropped: 0, Left: initial}, nil
}

func (s *guardrailsStage) Status() Status {
	details := map[string]string{}
	if len(s.degree) > 0 {
		details["degree_demotions"] = strconv.Itoa(len(s.degree))
	}
	if len(s.overflow) > 0 {
		details["cap_demotions"] = strconv.Itoa(len(s.overflow))
	}
	return Status{Name: s.Name(), Enabled: true, Details: details}
}
