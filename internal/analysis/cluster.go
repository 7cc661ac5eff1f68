package analysis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/kw-ranker/internal/cluster"
	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/ranking"
)

type clusterStage struct {
	clusters int
	aliases  int
}

// NewCluster creates the stage that merges semantically similar skills into
// one canonical keyword each. Knockouts pass through untouched.
func NewCluster() Stage {
	return &clusterStage{}
}

func (s *clusterStage) Name() string { return "cluster" }

func (s *clusterStage) Disable(string) {}

func (s *clusterStage) IsEnabled() bool { return true }

func (s *clusterStage) Validate(cfg *ranking.Config) error {
	return requireConfig(cfg)
}

func (s *clusterStage) Apply(ctx context.Context, deps *Deps, state *State) (Step, error) {
	if deps.Embedder == nil {
		return Step{}, fmt.Errorf("an embedder is required for clustering")
	}

	initial := state.Keywords.Len()
	knockouts := state.Keywords.Knockouts()
	skills := state.Keywords.Skills()

	clusterer := cluster.New(deps.Config.Clustering)
	clusters, canonical, err := clusterer.Cluster(ctx, skills, deps.Embedder)
	if err != nil {
		return Step{}, err
	}

	merged := &keywords.List{}
	merged.Items = append(merged.Items, knockouts.Items...)
	merged.Items = append(merged.Items, canonical.Items...)

	state.Clusters = clusters
	state.Keywords = merged
	s.clusters = len(clusters)
	s.aliases = initial - merged.Len()

	return Step{Initial: initial, Dropped: s.aliases, Left: merged.Len()}, nil
}

func (s *clusterStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: true,
		Details: map[string]string{
			"clusters":       strconv.Itoa(s.clusters),
			"aliases_folded": strconv.Itoa(s.aliases),
		},
	}
}
