package analysis

import (
	"context"
	"strconv"

	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/ranking"
)

type categorizeStage struct {
	required  int
	preferred int
	skills    int
}

// NewCategorize creates the stage that splits keywords into knockout
// requirements and rankable skills.
func NewCategorize() Stage {
	return &categorizeStage{}
}

func (s *categorizeStage) Name() string { return "categorize" }

func (s *categorizeStage) Disable(string) {}

func (s *categorizeStage) IsEnabled() bool { return true }

func (s *categorizeStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *categorizeStage) Apply(_ context.Context, deps *Deps, state *State) (Step, error) {
	initial := state.Keywords.Len()

	categorizer := ranking.NewCategorizer(deps.Config.Knockouts.ConfidenceThreshold, deps.Config.Roles)
	for _, kw := range state.Keywords.Items {
		result := categorizer.Categorize(kw)

		kw.Category = result.Category
		kw.KnockoutType = result.KnockoutType
		kw.Confidence = result.Confidence
		kw.Method = result.Method
		kw.YearsContext = result.YearsContext

		switch {
		case kw.KnockoutType == keywords.KnockoutRequired:
			s.required++
		case kw.KnockoutType == keywords.KnockoutPreferred:
			s.preferred++
		default:
			s.skills++
		}
	}

	return Step{Initial: initial, Dropped: 0, Left: initial}, nil
}

func (s *categorizeStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: true,
		Details: map[string]string{
			"required":  strconv.Itoa(s.required),
			"preferred": strconv.Itoa(s.preferred),
			"skills":    strconv.Itoa(s.skills),
		},
	}
}
