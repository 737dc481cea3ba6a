package extract

import (
	"regexp"
	"strings"
)

// EntityExtractor derives a search keyword string from a free-text claim
type EntityExtractor struct {
	patterns   []*regexp.Regexp
	separators []string
}

// NewEntityExtractor creates an extractor with the default question patterns.
// Pattern order matters: the first match wins.
func NewEntityExtractor() *EntityExtractor {
	exprs := []string{
		`what is (.*)\?`, `who is (.*)\?`, `where is (.*)\?`,
		`what's (.*)\?`, `who's (.*)\?`, `where's (.*)\?`,
		`is (.*) in`, `are (.*) in`,
	}

	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}

	return &EntityExtractor{
		patterns:   patterns,
		separators: []string{" is ", " are "},
	}
}

// Extract returns the lower-cased subject of the claim.
// Claims that match no pattern and contain no separator come back trimmed.
func (e *EntityExtractor) Extract(claim string) string {
	claim = strings.ToLower(claim)

	for _, pattern := range e.patterns {
		if m := pattern.FindStringSubmatch(claim); m != nil {
			return cleanCapture(m[1])
		}
	}

	for _, sep := range e.separators {
		if before, _, found := strings.Cut(claim, sep); found {
			return strings.ReplaceAll(strings.TrimSpace(before), " the ", "")
		}
	}

	return strings.TrimSpace(claim)
}

// Keywords splits the extracted entity on whitespace
func (e *EntityExtractor) Keywords(claim string) []string {
	return strings.Fields(e.Extract(claim))
}

// cleanCapture trims a pattern capture and drops every " the ". A capture
// always follows the space in its pattern, so a leading "the " is dropped
// too; a bare "the" is kept.
func cleanCapture(fragment string) string {
	entity := " " + strings.TrimSpace(fragment)
	entity = strings.ReplaceAll(entity, " the ", "")
	return strings.TrimSpace(entity)
}
