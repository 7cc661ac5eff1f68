package posting

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Job posting section names used by the scorer's boost table.
const (
	SectionTitle            = "title"
	SectionRequirements     = "requirements"
	SectionResponsibilities = "responsibilities"
	SectionCompany          = "company"
)

// Section header detection, checked in order; the first match wins.
var sectionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{SectionTitle, regexp.MustCompile(`^.*?(director|vp|vice president|head of|lead|manager).*$`)},
	{SectionRequirements, regexp.MustCompile(`(what you.ll need|what we.re looking for|what you bring|requirements|qualifications|must have|experience|skills)`)},
	{SectionResponsibilities, regexp.MustCompile(`(what you.ll do|what you.ll be doing|responsibilities|role|opportunity|day to day)`)},
	{SectionCompany, regexp.MustCompile(`(about|why join|benefits|culture|perks|our mission)`)},
}

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(director|vp|vice president|head of|lead|manager|senior|principal)\s+.*?(product|engineering|growth)`),
	regexp.MustCompile(`(?i)(product|engineering|growth)\s+.*?(director|vp|vice president|head of|lead|manager)`),
}

// Line is a posting line tagged with the section it belongs to.
type Line struct {
	Text    string
	Section string
}

// Document is a parsed job posting. Lines carry the section context computed
// once so the scorer does not rescan headers per keyword.
type Document struct {
	Text  string
	Title string
	Lines []Line
}

// Load reads a job posting text file. An empty posting is valid (the caller
// decides whether to warn); a missing file is not.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job posting file %q: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse builds a Document from raw posting text. Section context flows
// line-by-line: a line matching a header pattern switches the current
// section, starting from the company default, and the header line itself
// already belongs to the new section.
func Parse(text string) *Document {
	doc := &Document{Text: text}

	current := SectionCompany
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if section := detectSection(line); section != "" {
			current = section
		}
		doc.Lines = append(doc.Lines, Line{Text: line, Section: current})
	}

	doc.Title = extractTitle(doc.Lines)
	return doc
}

func detectSection(line string) string {
	lower := strings.ToLower(line)
	for _, sp := range sectionPatterns {
		if sp.pattern.MatchString(lower) {
			return sp.name
		}
	}
	return ""
}

// extractTitle scans the first ten lines for a role-shaped heading and falls
// back to the first line of the posting.
func extractTitle(lines []Line) string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}

	for _, line := range lines[:limit] {
		for _, pattern := range titlePatterns {
			if pattern.MatchString(line.Text) {
				return line.Text
			}
		}
	}

	if len(lines) > 0 {
		return lines[0].Text
	}
	return ""
}

// FirstWords returns the leading n whitespace-separated words of the posting.
// The scorer treats this window as the title region.
func (d *Document) FirstWords(n int) string {
	words := strings.Fields(d.Text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// Empty reports whether the posting holds no usable text.
func (d *Document) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}
