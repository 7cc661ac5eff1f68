// Package analysis wires the keyword pipeline together. Keywords flow
// through an ordered list of stages that normalize, categorize, score,
// cluster and finally match them against the resume; every stage mutates the
// shared state and reports how many keywords it touched.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/kw-ranker/internal/cluster"
	"github.com/spigell/kw-ranker/internal/embedding"
	"github.com/spigell/kw-ranker/internal/injection"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/logger"
	"github.com/spigell/kw-ranker/internal/posting"
	"github.com/spigell/kw-ranker/internal/ranking"
	"github.com/spigell/kw-ranker/internal/resume"
)

// Stage represents a single pipeline step applied to the keyword state.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *ranking.Config) error
	Apply(ctx context.Context, deps *Deps, state *State) (Step, error)
}

// Deps aggregates dependencies shared across all pipeline stages.
type Deps struct {
	Logger   *zap.Logger
	Config   *ranking.Config
	Embedder embedding.Embedder
	Posting  *posting.Document
	Corpus   *resume.Corpus

	// CacheDir is where embeddings persist between runs, logged once at
	// pipeline start. Empty means the cache is in-memory only.
	CacheDir string
}

// State is the mutable pipeline state. Stages replace Keywords as they drop
// or merge entries and attach their derived artifacts alongside.
type State struct {
	Keywords *keywords.List
	Skipped  []string
	Clusters []*cluster.Cluster
	Reports  []*injection.Report
}

func NewState(list *keywords.List) *State {
	return &State{Keywords: list}
}

// Step describes the result of executing a pipeline stage.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by stages that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

func requireConfig(cfg *ranking.Config) error {
	if cfg == nil {
		return fmt.Errorf("analysis configuration is required")
	}
	return nil
}

// Run executes the supplied stages sequentially over the shared state.
// Every enabled stage is validated up front so a broken configuration fails
// before any embedding work starts.
func Run(ctx context.Context, deps *Deps, stages []Stage, state *State) error {
	log := logger.WithFields(deps.Logger)
	if deps.Embedder != nil {
		log = logger.WithEmbeddingFields(log, deps.Embedder.ModelID(), deps.CacheDir)
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(deps.Config); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			log.Info("stage disabled", zap.String("name", stage.Name()))
			continue
		}

		info, err := stage.Apply(ctx, deps, state)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		log.Info("stage complete",
			zap.String("name", stage.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		if reporter, ok := stage.(statusProvider); ok {
			if details := reporter.Status().Details; len(details) > 0 {
				fields := append([]zap.Field{zap.String("name", stage.Name())}, logger.DetailFields(details)...)
				log.Debug("stage details", fields...)
			}
		}
	}

	return nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}
