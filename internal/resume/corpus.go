package resume

import (
	"fmt"
	"strings"
)

// Corpus section names.
const (
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionEducation  = "education"
)

// Sentence is one matchable unit of resume text with its provenance. Location
// pins the exact field for checklist output; Context is the human-readable
// placement ("Company - Title").
type Sentence struct {
	Section  string
	Location string
	Context  string
	Text     string
}

// Corpus is the flattened, section-tagged sentence list built from a resume.
// Order follows the resume document and is stable across runs.
type Corpus struct {
	Sentences []Sentence
}

// Corpus flattens the resume into matchable sentences: experience
// descriptions split into sentences, one entry per skill, one per education
// record. Empty fields are dropped.
func (r *Resume) Corpus() *Corpus {
	c := &Corpus{}

	for i, exp := range r.Experiences {
		context := strings.TrimSpace(fmt.Sprintf("%s - %s", exp.Company, exp.Title))
		context = strings.Trim(context, " -")
		for j, sentence := range splitSentences(exp.Description) {
			c.add(Sentence{
				Section:  SectionExperience,
				Location: fmt.Sprintf("experiences[%d].description (sentence %d)", i, j+1),
				Context:  context,
				Text:     sentence,
			})
		}
	}

	for i, skill := range r.Skills {
		c.add(Sentence{
			Section:  SectionSkills,
			Location: fmt.Sprintf("skills[%d]", i),
			Context:  "Skills",
			Text:     strings.TrimSpace(skill),
		})
	}

	for i, edu := range r.Education {
		parts := make([]string, 0, 2)
		if strings.TrimSpace(edu.Degree) != "" {
			parts = append(parts, strings.TrimSpace(edu.Degree))
		}
		if strings.TrimSpace(edu.School) != "" {
			parts = append(parts, strings.TrimSpace(edu.School))
		}
		c.add(Sentence{
			Section:  SectionEducation,
			Location: fmt.Sprintf("education[%d]", i),
			Context:  strings.Join(parts, " - "),
			Text:     strings.Join(parts, ", "),
		})
	}

	return c
}

func (c *Corpus) add(s Sentence) {
	if s.Text == "" {
		return
	}
	c.Sentences = append(c.Sentences, s)
}

func (c *Corpus) Len() int {
	return len(c.Sentences)
}

// Texts returns the sentence texts in corpus order, ready for batch embedding.
func (c *Corpus) Texts() []string {
	texts := make([]string, 0, len(c.Sentences))
	for _, s := range c.Sentences {
		texts = append(texts, s.Text)
	}
	return texts
}

// FullText joins the whole corpus into one document. The scorer uses it as
// the second document of the TF-IDF mini-corpus.
func (c *Corpus) FullText() string {
	return strings.Join(c.Texts(), "\n")
}
