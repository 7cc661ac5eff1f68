package keywords

import (
	"encoding/json"
	"os"
	"sort"
)

// Category separates binary must-have requirements from gradient skills.
type Category string

const (
	CategoryKnockout Category = "knockout"
	CategorySkill    Category = "skill"
)

// KnockoutType marks how strict a knockout requirement is.
type KnockoutType string

const (
	KnockoutRequired  KnockoutType = "required"
	KnockoutPreferred KnockoutType = "preferred"
)

// Detection methods reported by the categorizer.
const (
	MethodYearsBased   = "years_based"
	MethodPatternBased = "pattern_based"
)

// Role annotations accepted on input keywords. Anything else is treated as
// culture fit.
const (
	RoleCore      = "core"
	RoleImportant = "important"
	RoleCulture   = "culture"
)

// NoCluster is the ClusterID of keywords that never entered clustering.
const NoCluster = -1

// Keyword is a single keyword flowing through the analysis pipeline.
// Category is assigned exactly once by the categorizer; the only later
// transitions are knockout demotions done by the guardrails before
// clustering.
type Keyword struct {
	Raw          string       `json:"kw"`
	Normalized   string       `json:"normalized,omitempty"`
	Role         string       `json:"role,omitempty"`
	Category     Category     `json:"category,omitempty"`
	KnockoutType KnockoutType `json:"knockout_type,omitempty"`
	Confidence   float64      `json:"knockout_confidence,omitempty"`
	Method       string       `json:"detection_method,omitempty"`
	YearsContext string       `json:"years_context,omitempty"`
	TFIDF        float64      `json:"tfidf"`
	SectionBoost float64      `json:"section"`
	RoleWeight   float64      `json:"role_weight"`
	Score        float64      `json:"score"`
	Buzzword     bool         `json:"is_buzzword,omitempty"`
	ClusterID    int          `json:"cluster_id,omitempty"`
	Aliases      []string     `json:"aliases,omitempty"`
}

// IsKnockout reports whether the keyword was categorized as a knockout requirement.
func (k *Keyword) IsKnockout() bool {
	return k.Category == CategoryKnockout
}

// Demote turns a knockout back into a plain skill, clearing the knockout markers.
func (k *Keyword) Demote() {
	k.Category = CategorySkill
	k.KnockoutType = ""
	k.Confidence = 0
	k.Method = ""
	k.YearsContext = ""
}

// List is an ordered keyword collection. Order is the first-seen input order
// and is the tie-break key everywhere scores collide.
type List struct {
	Items []*Keyword
}

func (l *List) Len() int {
	return len(l.Items)
}

func (l *List) Texts() []string {
	texts := make([]string, 0, len(l.Items))
	for _, kw := range l.Items {
		texts = append(texts, kw.Raw)
	}
	return texts
}

func (l *List) FindByText(raw string) *Keyword {
	for _, kw := range l.Items {
		if kw.Raw == raw {
			return kw
		}
	}
	return nil
}

// Knockouts returns the knockout subset preserving order. The returned list
// shares keyword pointers with the receiver.
func (l *List) Knockouts() *List {
	return l.filter(func(k *Keyword) bool { return k.Category == CategoryKnockout })
}

// Skills returns the skill subset preserving order.
func (l *List) Skills() *List {
	return l.filter(func(k *Keyword) bool { return k.Category == CategorySkill })
}

func (l *List) filter(keep func(*Keyword) bool) *List {
	out := &List{}
	for _, kw := range l.Items {
		if keep(kw) {
			out.Items = append(out.Items, kw)
		}
	}
	return out
}

// SortByScore orders items by score descending. The sort is stable so equal
// scores keep their first-seen order.
func (l *List) SortByScore() {
	sort.SliceStable(l.Items, func(i, j int) bool {
		return l.Items[i].Score > l.Items[j].Score
	})
}

func (l *List) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "keywords_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
