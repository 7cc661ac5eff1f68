package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Resume is the parsed resume.json shape consumed by the pipeline.
type Resume struct {
	Personal    Personal     `json:"personal"`
	Experiences []Experience `json:"experiences"`
	Skills      []string     `json:"skills"`
	Education   []Education  `json:"education"`
}

type Personal struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
}

// Load parses a resume file. A missing or malformed file is an error for the
// caller to surface; there is no silent empty fallback.
func Load(path string) (*Resume, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening resume file %q: %w", path, err)
	}
	defer file.Close()

	var r Resume
	if err := json.NewDecoder(file).Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing resume file %q: %w", path, err)
	}
	return &r, nil
}

// splitSentences breaks free text on sentence boundaries. Splitting on the
// period-space pair keeps abbreviations like "B2B" intact and matches how
// downstream consumers count sentences.
func splitSentences(text string) []string {
	var sentences []string
	for _, part := range strings.Split(text, ". ") {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
