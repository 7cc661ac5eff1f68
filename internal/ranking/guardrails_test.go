package ranking

import (
	"reflect"
	"testing"

	"github.com/spigell/kw-ranker/internal/keywords"
)

func knockout(text string, tfidf, score float64) *keywords.Keyword {
	kw := makeKeyword(text, keywords.RoleCore)
	kw.Category = keywords.CategoryKnockout
	kw.KnockoutType = keywords.KnockoutRequired
	kw.Confidence = 0.8
	kw.Method = keywords.MethodPatternBased
	kw.TFIDF = tfidf
	kw.Score = score
	return kw
}

func TestApplyDegreeGuardrail(t *testing.T) {
	seeded := knockout("MBA preferred", 0, 0.4)
	mentioned := knockout("bachelor's degree", 0.3, 0.6)
	years := knockout("5+ years experience", 0, 0.7)

	list := &keywords.List{Items: []*keywords.Keyword{seeded, mentioned, years}}

	demoted := ApplyDegreeGuardrail(list)

	if !reflect.DeepEqual(demoted, []string{"MBA preferred"}) {
		t.Fatalf("expected only the unmentioned degree demoted, got %v", demoted)
	}
	if seeded.Category != keywords.CategorySkill || seeded.KnockoutType != "" || seeded.Confidence != 0 {
		t.Fatalf("expected a clean demotion, got %+v", seeded)
	}
	if mentioned.Category != keywords.CategoryKnockout {
		t.Fatalf("degree with posting frequency must stay a knockout, got %q", mentioned.Category)
	}
	if years.Category != keywords.CategoryKnockout {
		t.Fatalf("years requirement must stay a knockout, got %q", years.Category)
	}
}

func TestEnforceKnockoutMaximum(t *testing.T) {
	list := &keywords.List{}
	scores := []float64{0.9, 0.3, 0.8, 0.4, 0.7, 0.6, 0.5}
	for i, score := range scores {
		list.Items = append(list.Items, knockout(string(rune('a'+i)), 0.2, score))
	}

	demoted := EnforceKnockoutMaximum(list, 5)

	// b (0.3) and d (0.4) are the two lowest.
	if !reflect.DeepEqual(demoted, []string{"d", "b"}) {
		t.Fatalf("expected the lowest scores demoted, got %v", demoted)
	}
	if got := list.Knockouts().Len(); got != 5 {
		t.Fatalf("expected 5 knockouts left, got %d", got)
	}
	if got := list.Skills().Len(); got != 2 {
		t.Fatalf("expected 2 demoted skills, got %d", got)
	}
	// Demotion never removes keywords from the list.
	if list.Len() != 7 {
		t.Fatalf("expected all 7 keywords kept, got %d", list.Len())
	}
}

func TestEnforceKnockoutMaximumUnderLimit(t *testing.T) {
	list := &keywords.List{Items: []*keywords.Keyword{knockout("a", 0.2, 0.9)}}

	if demoted := EnforceKnockoutMaximum(list, 5); demoted != nil {
		t.Fatalf("expected no demotion under the limit, got %v", demoted)
	}
}
