package posting

import (
	"os"
	"path/filepath"
	"testing"
)

const samplePosting = `Director of Product Management

About Acme
We build B2B SaaS tools for growth teams.

What you'll do
Own the product roadmap and drive execution.

Requirements
7+ years in product management.
Experience with analytics platforms.
`

func TestParseTagsLinesWithSections(t *testing.T) {
	doc := Parse(samplePosting)

	expected := []struct {
		text    string
		section string
	}{
		{"Director of Product Management", SectionTitle},
		{"About Acme", SectionCompany},
		{"We build B2B SaaS tools for growth teams.", SectionCompany},
		{"What you'll do", SectionResponsibilities},
		{"Own the product roadmap and drive execution.", SectionResponsibilities},
		{"Requirements", SectionRequirements},
		{"7+ years in product management.", SectionRequirements},
		{"Experience with analytics platforms.", SectionRequirements},
	}

	if len(doc.Lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(doc.Lines))
	}
	for i, want := range expected {
		got := doc.Lines[i]
		if got.Text != want.text || got.Section != want.section {
			t.Fatalf("line %d: expected %q in %q, got %q in %q", i, want.text, want.section, got.Text, got.Section)
		}
	}
}

func TestExtractTitleFindsRoleHeading(t *testing.T) {
	doc := Parse(samplePosting)
	if doc.Title != "Director of Product Management" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
}

func TestExtractTitleFallsBackToFirstLine(t *testing.T) {
	doc := Parse("Acme is hiring\nCome join us")
	if doc.Title != "Acme is hiring" {
		t.Fatalf("unexpected fallback title: %q", doc.Title)
	}
}

func TestFirstWordsBoundsTheTitleRegion(t *testing.T) {
	doc := Parse("one two three four five")
	if got := doc.FirstWords(3); got != "one two three" {
		t.Fatalf("unexpected window: %q", got)
	}
	if got := doc.FirstWords(50); got != "one two three four five" {
		t.Fatalf("short postings should return everything, got %q", got)
	}
}

func TestLoadReadsFileAndReportsMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posting.md")
	if err := os.WriteFile(path, []byte(samplePosting), 0o644); err != nil {
		t.Fatalf("writing posting: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Empty() {
		t.Fatalf("expected non-empty document")
	}

	if _, err := Load(filepath.Join(dir, "missing.md")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEmptyDocument(t *testing.T) {
	doc := Parse("   \n  ")
	if !doc.Empty() {
		t.Fatalf("expected empty document")
	}
	if doc.Title != "" {
		t.Fatalf("expected empty title, got %q", doc.Title)
	}
}
