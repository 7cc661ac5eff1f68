package injection

import (
	"context"
	"fmt"
	"testing"

	"github.com/spigell/kw-ranker/internal/keywords"
	"github.com/spigell/kw-ranker/internal/resume"
)

type stubEmbedder struct {
	vectors   map[string][]float32
	textCalls int
	batches   int
}

func (s *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	s.textCalls++
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	s.batches++
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, ok := s.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", text)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (s *stubEmbedder) ModelID() string { return "stub" }

func (s *stubEmbedder) Close() error { return nil }

func testAnalyzer() *Analyzer {
	return New(Config{
		SimilarityFloor:   0.3,
		PhraseThreshold:   0.7,
		ContainsThreshold: 0.8,
		TieEpsilon:        0.01,
		MinWordLength:     3,
	})
}

func sentence(text string) resume.Sentence {
	return resume.Sentence{
		Section:  resume.SectionExperience,
		Location: "experiences[0].description (sentence 1)",
		Context:  "Acme - VP Product",
		Text:     text,
	}
}

func keywordList(texts ...string) *keywords.List {
	list := &keywords.List{}
	for _, text := range texts {
		list.Items = append(list.Items, &keywords.Keyword{
			Raw:        text,
			Normalized: keywords.Normalize(text),
			Category:   keywords.CategorySkill,
		})
	}
	return list
}

func TestAnalyzeExactContainment(t *testing.T) {
	text := "Led product strategy for the platform."
	embedder := &stubEmbedder{vectors: map[string][]float32{text: {1, 0}}}
	corpus := &resume.Corpus{Sentences: []resume.Sentence{sentence(text)}}

	reports, err := testAnalyzer().Analyze(context.Background(), keywordList("product strategy"), corpus, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := reports[0]
	if !report.Matched || report.Best == nil {
		t.Fatalf("expected a match, got %+v", report)
	}
	if report.Best.Similarity != 1.0 || report.Best.Action != ActionContains {
		t.Fatalf("expected full textual match, got %+v", report.Best)
	}
	if report.Best.Sentence != text {
		t.Fatalf("expected the original sentence text, got %q", report.Best.Sentence)
	}
	// A textual hit never needs the keyword embedded.
	if embedder.textCalls != 0 {
		t.Fatalf("expected no keyword embeddings, got %d", embedder.textCalls)
	}
	if embedder.batches != 1 {
		t.Fatalf("expected the corpus embedded once, got %d batches", embedder.batches)
	}
}

func TestAnalyzeWordOverlap(t *testing.T) {
	text := "Quarterly planning tied roadmap reviews to execution metrics."
	embedder := &stubEmbedder{vectors: map[string][]float32{text: {1, 0}}}
	corpus := &resume.Corpus{Sentences: []resume.Sentence{sentence(text)}}

	reports, err := testAnalyzer().Analyze(context.Background(), keywordList("roadmap planning execution"), corpus, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := reports[0]
	if !report.Matched || report.Best.Similarity != 1.0 {
		t.Fatalf("expected overlap to count as a full match, got %+v", report.Best)
	}
	if report.Best.Action != ActionContains {
		t.Fatalf("expected %q, got %q", ActionContains, report.Best.Action)
	}
	if embedder.textCalls != 0 {
		t.Fatalf("expected overlap to skip embedding, got %d calls", embedder.textCalls)
	}
}

func TestAnalyzeSemanticMatch(t *testing.T) {
	text := "Ran weekly partner syncs."
	embedder := &stubEmbedder{vectors: map[string][]float32{
		text:                    {0.75, 0.6614378},
		"stakeholder alignment": {1, 0},
	}}
	corpus := &resume.Corpus{Sentences: []resume.Sentence{sentence(text)}}

	reports, err := testAnalyzer().Analyze(context.Background(), keywordList("stakeholder alignment"), corpus, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := reports[0]
	if !report.Matched {
		t.Fatalf("expected a semantic match, got %+v", report)
	}
	if report.Best.Similarity != 0.75 {
		t.Fatalf("expected similarity 0.75, got %v", report.Best.Similarity)
	}
	if report.Best.Action != ActionPhrase {
		t.Fatalf("expected %q, got %q", ActionPhrase, report.Best.Action)
	}
	if embedder.textCalls != 1 {
		t.Fatalf("expected the keyword embedded once, got %d", embedder.textCalls)
	}
}

func TestAnalyzeBelowFloor(t *testing.T) {
	text := "Organized the office book club."
	embedder := &stubEmbedder{vectors: map[string][]float32{
		text:         {0, 1},
		"kubernetes": {1, 0},
	}}
	corpus := &resume.Corpus{Sentences: []resume.Sentence{sentence(text)}}

	reports, err := testAnalyzer().Analyze(context.Background(), keywordList("kubernetes"), corpus, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := reports[0]
	if report.Matched || report.Best != nil || report.Ties != nil {
		t.Fatalf("expected an unmatched report, got %+v", report)
	}
	if report.Keyword != "kubernetes" {
		t.Fatalf("expected the keyword preserved, got %q", report.Keyword)
	}
}

func TestAnalyzeTies(t *testing.T) {
	first := "Grew b2b sales in Europe."
	second := "Scaled b2b partnerships."
	third := "Maintained the intranet."

	embedder := &stubEmbedder{vectors: map[string][]float32{
		first:  {1, 0},
		second: {1, 0},
		third:  {0, 1},
		"b2b":  {1, 0},
	}}
	corpus := &resume.Corpus{Sentences: []resume.Sentence{
		sentence(first), sentence(second), sentence(third),
	}}

	reports, err := testAnalyzer().Analyze(context.Background(), keywordList("b2b"), corpus, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := reports[0]
	if report.Best.Sentence != first {
		t.Fatalf("expected the first sentence to win the tie, got %q", report.Best.Sentence)
	}
	if len(report.Ties) != 1 || report.Ties[0].Sentence != second {
		t.Fatalf("expected one tie on the second sentence, got %+v", report.Ties)
	}
}

func TestAnalyzeAliasVariants(t *testing.T) {
	text := "Owned the product vision council."
	embedder := &stubEmbedder{vectors: map[string][]float32{
		text:               {0, 1},
		"product strategy": {1, 0},
	}}
	corpus := &resume.Corpus{Sentences: []resume.Sentence{sentence(text)}}

	list := keywordList("product strategy")
	list.Items[0].Aliases = []string{"product vision"}

	reports, err := testAnalyzer().Analyze(context.Background(), list, corpus, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := reports[0]
	if !report.Matched {
		t.Fatalf("expected the alias to match, got %+v", report)
	}
	if report.Best.Variant != "product vision" {
		t.Fatalf("expected the alias variant to win, got %q", report.Best.Variant)
	}
	if report.Keyword != "product strategy" {
		t.Fatalf("expected the report keyed by the canonical text, got %q", report.Keyword)
	}
}

func TestAnalyzeWithoutCorpus(t *testing.T) {
	embedder := &stubEmbedder{}

	reports, err := testAnalyzer().Analyze(context.Background(), keywordList("go", "rust"), nil, embedder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("expected a report per keyword, got %d", len(reports))
	}
	for _, report := range reports {
		if report.Matched || report.Best != nil {
			t.Fatalf("expected unmatched reports, got %+v", report)
		}
	}
	if embedder.batches != 0 || embedder.textCalls != 0 {
		t.Fatalf("expected no embeddings without a corpus")
	}
}

func TestClassify(t *testing.T) {
	a := testAnalyzer()

	cases := []struct {
		name    string
		textual bool
		sim     float64
		want    string
	}{
		{"textual always contains", true, 0, ActionContains},
		{"high similarity contains", false, 0.85, ActionContains},
		{"mid similarity phrase", false, 0.7, ActionPhrase},
		{"low similarity bullet", false, 0.699, ActionNewBullet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.classify(tc.textual, tc.sim); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
