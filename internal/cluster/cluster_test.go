package cluster

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/spigell/kw-ranker/internal/keywords"
)

// stubEmbedder serves fixed vectors keyed by the exact text it receives.
// Unknown texts get a zero vector, which never clears any threshold.
type stubEmbedder struct {
	vectors map[string][]float32
	batches [][]string
}

func (s *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 0}, nil
}

func (s *stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	s.batches = append(s.batches, texts)
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := s.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (s *stubEmbedder) ModelID() string { return "stub" }

func (s *stubEmbedder) Close() error { return nil }

func skill(text string, score float64) *keywords.Keyword {
	return &keywords.Keyword{
		Raw:        text,
		Normalized: keywords.Normalize(text),
		Category:   keywords.CategorySkill,
		Score:      score,
		ClusterID:  keywords.NoCluster,
	}
}

func testConfig() Config {
	return Config{SimilarityThreshold: 0.5, MedianMultiplier: 1.2, MinKeywords: 10}
}

func TestClusterGroupsSimilarKeywords(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"product strategy":   {1, 0, 0},
		"product management": {0.8, 0.6, 0},
		"user research":      {0, 0, 1},
	}}

	skills := &keywords.List{Items: []*keywords.Keyword{
		skill("product strategy", 0.9),
		skill("product management", 0.7),
		skill("user research", 0.5),
	}}

	clusters, canonical, err := New(testConfig()).Cluster(context.Background(), skills, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	first := clusters[0]
	if first.Canonical.Raw != "product strategy" {
		t.Fatalf("expected the higher score as canonical, got %q", first.Canonical.Raw)
	}
	if !reflect.DeepEqual(first.Canonical.Aliases, []string{"product management"}) {
		t.Fatalf("unexpected aliases: %v", first.Canonical.Aliases)
	}
	for _, member := range first.Members {
		if member.ClusterID != 0 {
			t.Fatalf("expected cluster id 0 on %q, got %d", member.Raw, member.ClusterID)
		}
	}

	if got := canonical.Texts(); !reflect.DeepEqual(got, []string{"product strategy", "user research"}) {
		t.Fatalf("unexpected canonical list: %v", got)
	}
}

func TestClusterExperiencePriority(t *testing.T) {
	// Identical vectors force one cluster; the experience keyword must win
	// the canonical slot despite the lower score.
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"product leadership":             {1, 0, 0},
		"7+ years of product leadership": {1, 0, 0},
	}}

	skills := &keywords.List{Items: []*keywords.Keyword{
		skill("product leadership", 0.95),
		skill("7+ years of product leadership", 0.4),
	}}

	clusters, canonical, err := New(testConfig()).Cluster(context.Background(), skills, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if got := canonical.Items[0].Raw; got != "7+ years of product leadership" {
		t.Fatalf("expected the experience keyword as canonical, got %q", got)
	}
	if !reflect.DeepEqual(canonical.Items[0].Aliases, []string{"product leadership"}) {
		t.Fatalf("unexpected aliases: %v", canonical.Items[0].Aliases)
	}
}

func TestClusterRejectsKnockouts(t *testing.T) {
	embedder := &stubEmbedder{}

	gate := skill("5+ years experience", 0.9)
	gate.Category = keywords.CategoryKnockout

	skills := &keywords.List{Items: []*keywords.Keyword{gate}}

	_, _, err := New(testConfig()).Cluster(context.Background(), skills, embedder)
	if !errors.Is(err, ErrKnockout) {
		t.Fatalf("expected ErrKnockout, got %v", err)
	}
	if len(embedder.batches) != 0 {
		t.Fatalf("expected no embedding calls, got %d", len(embedder.batches))
	}
}

func TestClusterEmptyList(t *testing.T) {
	clusters, canonical, err := New(testConfig()).Cluster(context.Background(), &keywords.List{}, &stubEmbedder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 0 || canonical.Len() != 0 {
		t.Fatalf("expected empty result, got %d clusters and %d canonicals", len(clusters), canonical.Len())
	}
}

func TestClusterAliasDeduplication(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"pipelines": {1, 0, 0},
		"CI/CD":     {0.9, 0.1, 0},
	}}

	skills := &keywords.List{Items: []*keywords.Keyword{
		skill("pipelines", 0.9),
		skill("CI/CD", 0.5),
		skill("CI/CD", 0.4),
	}}

	_, canonical, err := New(testConfig()).Cluster(context.Background(), skills, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if canonical.Len() != 1 {
		t.Fatalf("expected one cluster, got %d", canonical.Len())
	}
	if !reflect.DeepEqual(canonical.Items[0].Aliases, []string{"CI/CD"}) {
		t.Fatalf("expected a single deduplicated alias, got %v", canonical.Items[0].Aliases)
	}
}

func TestClusterEmbedsEnhancedTexts(t *testing.T) {
	embedder := &stubEmbedder{}
	skills := &keywords.List{Items: []*keywords.Keyword{
		skill("growth marketing", 0.5),
		skill("python", 0.5),
	}}

	_, _, err := New(testConfig()).Cluster(context.Background(), skills, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"growth marketing business growth scaling products", "python"}
	if len(embedder.batches) != 1 || !reflect.DeepEqual(embedder.batches[0], want) {
		t.Fatalf("expected enhanced batch %v, got %v", want, embedder.batches)
	}
}

func TestIsExperienceKeyword(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"7+ years of product leadership", true},
		{"5 years experience", true},
		{"3+ years leading teams", true},
		{"product leadership", false},
		{"years of experience", false},
	}

	for _, tc := range cases {
		if got := isExperienceKeyword(tc.text); got != tc.want {
			t.Fatalf("isExperienceKeyword(%q) = %v, expected %v", tc.text, got, tc.want)
		}
	}
}
