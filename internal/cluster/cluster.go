// Package cluster groups semantically similar skill keywords so the exports
// carry one canonical phrase per concept instead of near-duplicates.
package cluster

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/kw-ranker/internal/embedding"
	"github.com/spigell/kw-ranker/internal/keywords"
)

// ErrKnockout is returned when a knockout requirement reaches the clusterer.
// Knockouts are binary gates and merging them into skill clusters would hide
// them from the exports.
var ErrKnockout = errors.New("knockout keyword passed to clusterer")

// Config holds the clustering and trimming knobs.
type Config struct {
	// SimilarityThreshold is the minimum cosine similarity to the cluster
	// founder for a keyword to join the cluster.
	SimilarityThreshold float64 `mapstructure:"similarity-threshold"`
	// MedianMultiplier scales the median score into the trim threshold.
	MedianMultiplier float64 `mapstructure:"median-multiplier"`
	// MinKeywords is the smallest canonical list the trimmer may leave.
	MinKeywords int `mapstructure:"min-keywords"`
}

// Cluster is one group of related keywords. Canonical points into Members.
type Cluster struct {
	ID        int
	Canonical *keywords.Keyword
	Members   []*keywords.Keyword
}

// Clusterer groups skills by embedding similarity. Grouping is a single
// greedy pass in input order against each cluster's founding vector, so the
// outcome is deterministic for a fixed input order.
type Clusterer struct {
	threshold float64
}

func New(cfg Config) *Clusterer {
	return &Clusterer{threshold: cfg.SimilarityThreshold}
}

type group struct {
	founder []float32
	members []*keywords.Keyword
}

// Cluster embeds all skills in one batch and groups them. It returns the
// clusters plus the canonical keyword list in cluster creation order, with
// ClusterID and Aliases filled in on the canonicals.
func (c *Clusterer) Cluster(ctx context.Context, skills *keywords.List, embedder embedding.Embedder) ([]*Cluster, *keywords.List, error) {
	for _, kw := range skills.Items {
		if kw.IsKnockout() {
			return nil, nil, fmt.Errorf("%w: %q", ErrKnockout, kw.Raw)
		}
	}
	if skills.Len() == 0 {
		return nil, &keywords.List{}, nil
	}

	vectors, err := embedder.EmbedTexts(ctx, enhanceTexts(skills.Texts()))
	if err != nil {
		return nil, nil, fmt.Errorf("embedding skill keywords: %w", err)
	}

	var groups []*group
	for i, kw := range skills.Items {
		joined := false
		for _, g := range groups {
			if embedding.Cosine(vectors[i], g.founder) >= c.threshold {
				g.members = append(g.members, kw)
				joined = true
				break
			}
		}
		if !joined {
			groups = append(groups, &group{founder: vectors[i], members: []*keywords.Keyword{kw}})
		}
	}

	clusters := make([]*Cluster, 0, len(groups))
	canonical := &keywords.List{}
	for id, g := range groups {
		head := selectCanonical(g.members)
		head.Aliases = aliasesFor(head, g.members)
		for _, member := range g.members {
			member.ClusterID = id
		}

		clusters = append(clusters, &Cluster{ID: id, Canonical: head, Members: g.members})
		canonical.Items = append(canonical.Items, head)
	}

	return clusters, canonical, nil
}

// selectCanonical picks the cluster representative: experience requirements
// outrank plain skills, then the higher score wins, then the first seen.
func selectCanonical(members []*keywords.Keyword) *keywords.Keyword {
	best := members[0]
	for _, kw := range members[1:] {
		expKw, expBest := isExperienceKeyword(kw.Normalized), isExperienceKeyword(best.Normalized)
		switch {
		case expKw != expBest:
			if expKw {
				best = kw
			}
		case kw.Score > best.Score:
			best = kw
		}
	}
	return best
}

// aliasesFor lists the other member texts, deduplicated and never equal to
// the canonical text.
func aliasesFor(head *keywords.Keyword, members []*keywords.Keyword) []string {
	seen := map[string]struct{}{head.Raw: {}}
	var aliases []string
	for _, kw := range members {
		if _, ok := seen[kw.Raw]; ok {
			continue
		}
		seen[kw.Raw] = struct{}{}
		aliases = append(aliases, kw.Raw)
	}
	return aliases
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\+?\s*years?\s+in\s+`),
	regexp.MustCompile(`\d+\+?\s*years?\s+of\s+`),
	regexp.MustCompile(`\d+\+?\s*years?\s+experience`),
	regexp.MustCompile(`\d+\+?\s*years?\s+leading`),
	regexp.MustCompile(`\d+\+?\s*years?\s+managing`),
}

func isExperienceKeyword(text string) bool {
	for _, p := range experiencePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

var scalingTerms = []string{"scale", "scaling", "growth", "expansion"}

// enhanceTexts pads scaling phrases with shared context before embedding.
// Short fragments like "scaling teams" and "growth" otherwise land too far
// apart for the model to group.
func enhanceTexts(texts []string) []string {
	enhanced := make([]string, len(texts))
	for i, text := range texts {
		enhanced[i] = text
		lower := strings.ToLower(text)
		for _, term := range scalingTerms {
			if strings.Contains(lower, term) {
				enhanced[i] = text + " business growth scaling products"
				break
			}
		}
	}
	return enhanced
}
