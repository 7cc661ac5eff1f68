package keywords

import (
	"encoding/json"
	"os"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "lowercases", input: "Product Strategy", expect: "product strategy"},
		{name: "collapses whitespace", input: "  product \t strategy \n", expect: "product strategy"},
		{name: "folds fullwidth forms", input: "ＡＰＩ design", expect: "api design"},
		{name: "empty stays empty", input: "   ", expect: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestSortByScoreIsStable(t *testing.T) {
	list := &List{Items: []*Keyword{
		{Raw: "first", Score: 0.5},
		{Raw: "second", Score: 0.9},
		{Raw: "third", Score: 0.5},
	}}

	list.SortByScore()

	order := []string{"second", "first", "third"}
	for i, want := range order {
		if got := list.Items[i].Raw; got != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestKnockoutAndSkillSubsets(t *testing.T) {
	list := &List{Items: []*Keyword{
		{Raw: "mba required", Category: CategoryKnockout},
		{Raw: "product strategy", Category: CategorySkill},
		{Raw: "5+ years experience", Category: CategoryKnockout},
	}}

	knockouts := list.Knockouts()
	if knockouts.Len() != 2 {
		t.Fatalf("expected 2 knockouts, got %d", knockouts.Len())
	}
	if knockouts.Items[0].Raw != "mba required" || knockouts.Items[1].Raw != "5+ years experience" {
		t.Fatalf("knockouts out of order: %v", knockouts.Texts())
	}

	skills := list.Skills()
	if skills.Len() != 1 || skills.Items[0].Raw != "product strategy" {
		t.Fatalf("unexpected skills subset: %v", skills.Texts())
	}
}

func TestDemoteClearsKnockoutMarkers(t *testing.T) {
	kw := &Keyword{
		Raw:          "mba required",
		Category:     CategoryKnockout,
		KnockoutType: KnockoutRequired,
		Confidence:   0.8,
		Method:       MethodYearsBased,
		YearsContext: "5+ years",
	}

	kw.Demote()

	if kw.Category != CategorySkill {
		t.Fatalf("expected skill category, got %q", kw.Category)
	}
	if kw.KnockoutType != "" || kw.Confidence != 0 || kw.Method != "" || kw.YearsContext != "" {
		t.Fatalf("knockout markers not cleared: %+v", kw)
	}
}

func TestDumpToTmpFileRoundTrips(t *testing.T) {
	list := &List{Items: []*Keyword{
		{Raw: "product strategy", Category: CategorySkill, Score: 0.82, Aliases: []string{"product vision"}},
	}}

	filename, err := list.DumpToTmpFile()
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	defer os.Remove(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded []*Keyword
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Raw != "product strategy" {
		t.Fatalf("unexpected dump content: %+v", decoded)
	}
	if decoded[0].Score != 0.82 {
		t.Fatalf("score lost in dump: %v", decoded[0].Score)
	}
}

func TestFindByText(t *testing.T) {
	list := &List{Items: []*Keyword{
		{Raw: "platform"},
		{Raw: "analytics"},
	}}

	if kw := list.FindByText("analytics"); kw == nil || kw.Raw != "analytics" {
		t.Fatalf("expected to find analytics, got %+v", kw)
	}
	if kw := list.FindByText("missing"); kw != nil {
		t.Fatalf("expected nil for missing keyword, got %+v", kw)
	}
}
