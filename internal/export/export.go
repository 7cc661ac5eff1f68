// Package export writes the analysis outputs: the ranked keyword JSON the
// resume automation consumes, the per-keyword injection report and a
// markdown checklist for hand editing.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spigell/kw-ranker/internal/injection"
	"github.com/spigell/kw-ranker/internal/keywords"
)

// Output file names inside the export directory.
const (
	DefaultDir = "working"

	analysisFile  = "keyword_analysis.json"
	injectionFile = "injection_report.json"
	checklistFile = "keyword-checklist.md"
)

// KnockoutEntry is one knockout requirement in keyword_analysis.json.
// Knockouts never cluster, so Aliases stays empty; it is kept non-nil to
// hold the JSON shape stable for downstream parsers.
type KnockoutEntry struct {
	Keyword string                `json:"keyword"`
	Score   float64               `json:"score"`
	Type    keywords.KnockoutType `json:"type,omitempty"`
	Aliases []string              `json:"aliases"`
}

// SkillEntry is one ranked canonical skill in keyword_analysis.json.
type SkillEntry struct {
	Keyword  string   `json:"kw"`
	Score    float64  `json:"score"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

// Metadata carries the exported counts. TotalKeywordsProcessed is always
// the sum of the two group counts.
type Metadata struct {
	TotalKeywordsProcessed int `json:"total_keywords_processed"`
	KnockoutCount          int `json:"knockout_count"`
	SkillsCount            int `json:"skills_count"`
}

// Result is the keyword_analysis.json payload.
type Result struct {
	KnockoutRequirements []KnockoutEntry `json:"knockout_requirements"`
	SkillsRanked         []SkillEntry    `json:"skills_ranked"`
	Metadata             Metadata        `json:"metadata"`
}

// BuildResult assembles the export payload from the final keyword list.
func BuildResult(list *keywords.List) *Result {
	knockouts := sortedKnockouts(list)
	skills := sortedSkills(list)

	result := &Result{
		KnockoutRequirements: make([]KnockoutEntry, 0, len(knockouts)),
		SkillsRanked:         make([]SkillEntry, 0, len(skills)),
		Metadata: Metadata{
			TotalKeywordsProcessed: len(knockouts) + len(skills),
			KnockoutCount:          len(knockouts),
			SkillsCount:            len(skills),
		},
	}

	for _, kw := range knockouts {
		result.KnockoutRequirements = append(result.KnockoutRequirements, KnockoutEntry{
			Keyword: kw.Raw,
			Score:   kw.Score,
			Type:    kw.KnockoutType,
			Aliases: []string{},
		})
	}

	for _, kw := range skills {
		result.SkillsRanked = append(result.SkillsRanked, SkillEntry{
			Keyword:  kw.Raw,
			Score:    kw.Score,
			Category: string(kw.Category),
			Aliases:  aliasesOrEmpty(kw.Aliases),
		})
	}

	return result
}

// sortedKnockouts orders knockouts required first, then by score. The sort
// is stable so equal entries keep pipeline order.
func sortedKnockouts(list *keywords.List) []*keywords.Keyword {
	knockouts := append([]*keywords.Keyword{}, list.Knockouts().Items...)
	sort.SliceStable(knockouts, func(i, j int) bool {
		required := knockouts[i].KnockoutType == keywords.KnockoutRequired
		if required != (knockouts[j].KnockoutType == keywords.KnockoutRequired) {
			return required
		}
		return knockouts[i].Score > knockouts[j].Score
	})
	return knockouts
}

func sortedSkills(list *keywords.List) []*keywords.Keyword {
	skills := append([]*keywords.Keyword{}, list.Skills().Items...)
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Score > skills[j].Score
	})
	return skills
}

func aliasesOrEmpty(aliases []string) []string {
	if aliases == nil {
		return []string{}
	}
	return aliases
}

// Exporter writes the output files into one directory.
type Exporter struct {
	dir       string
	topSkills int
}

// NewExporter creates an exporter rooted at dir, created on first export.
// An empty dir falls back to the default.
func NewExporter(dir string, topSkills int) *Exporter {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	return &Exporter{dir: dir, topSkills: topSkills}
}

// Export writes keyword_analysis.json, the injection report (when reports
// exist) and the markdown checklist. It returns the written paths.
func (e *Exporter) Export(result *Result, reports []*injection.Report) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %q: %w", e.dir, err)
	}

	paths := make([]string, 0, 3)

	analysisPath := filepath.Join(e.dir, analysisFile)
	if err := writeJSON(analysisPath, result); err != nil {
		return nil, err
	}
	paths = append(paths, analysisPath)

	if len(reports) > 0 {
		injectionPath := filepath.Join(e.dir, injectionFile)
		if err := writeJSON(injectionPath, reports); err != nil {
			return nil, err
		}
		paths = append(paths, injectionPath)
	}

	checklistPath := filepath.Join(e.dir, checklistFile)
	checklist := Checklist(result, reports, e.topSkills)
	if err := os.WriteFile(checklistPath, []byte(checklist), 0o644); err != nil {
		return nil, fmt.Errorf("writing checklist %q: %w", checklistPath, err)
	}
	paths = append(paths, checklistPath)

	return paths, nil
}

func writeJSON(path string, payload any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return nil
}
