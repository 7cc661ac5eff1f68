package analysis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/kw-ranker/internal/injection"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/ranking"
)

type injectStage struct {
	disabled bool
	reason   string
	matched  int
	total    int
}

// NewInject creates the stage that matches knockouts and the top skills
// against the resume and suggests where each keyword could land. The caller
// disables it when no resume is configured.
func NewInject() Stage {
	return &injectStage{}
}

func (s *injectStage) Name() string { return "inject" }

func (s *injectStage) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *injectStage) IsEnabled() bool { return !s.disabled }

func (s *injectStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *injectStage) Apply(ctx context.Context, deps *Deps, state *State) (Step, error) {
	if deps.Corpus == nil {
		return Step{}, fmt.Errorf("a resume corpus is required for injection analysis")
	}
	if deps.Embedder == nil {
		return Step{}, fmt.Errorf("an embedder is required for injection analysis")
	}

	targets := injectionTargets(state.Keywords, deps.Config.TopSkills)

	analyzer := injection.New(deps.Config.Injection)
	reports, err := analyzer.Analyze(ctx, targets, deps.Corpus, deps.Embedder)
	if err != nil {
		return Step{}, err
	}

	state.Reports = reports
	s.total = len(reports)
	for _, report := range reports {
		if report.Matched {
			s.matched++
		}
	}

	return Step{Initial: s.total, Dropped: s.total - s.matched, Left: s.matched}, nil
}

// injectionTargets picks every knockout plus the highest scoring skills.
// The keyword list itself stays untouched.
func injectionTargets(list *keywords.List, topSkills int) *keywords.List {
	targets := &keywords.List{}
	targets.Items = append(targets.Items, list.Knockouts().Items...)

	skills := list.Skills()
	ranked := &keywords.List{Items: append([]*keywords.Keyword{}, skills.Items...)}
	ranked.SortByScore()

	top := min(topSkills, ranked.Len())
	targets.Items = append(targets.Items, ranked.Items[:top]...)

	return targets
}

func (s *injectStage) Status() Status {
	details := map[string]string{}
	if s.total > 0 {
		details["matched"] = strconv.Itoa(s.matched)
		details["unmatched"] = strconv.Itoa(s.total - s.matched)
	}
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: details}
}
