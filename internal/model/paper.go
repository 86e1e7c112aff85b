package model

import (
	"strings"
	"unicode/utf8"
)

// Paper is a single title/abstract pair submitted for screening.
// Papers are immutable inputs; the pipeline never modifies them.
type Paper struct {
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`
}

// ValidateBatch checks that the batch has exactly expected papers and that
// every paper carries a non-blank title and abstract. It returns a
// *ValidationError describing the first violation, referencing the offending
// paper's position, or nil if the batch is valid.
func ValidateBatch(papers []Paper, expected int) error {
	if len(papers) != expected {
		return &ValidationError{
			Expected: expected,
			Got:      len(papers),
			Position: -1,
		}
	}
	for i, p := range papers {
		if strings.TrimSpace(p.Title) == "" {
			return &ValidationError{Expected: expected, Got: len(papers), Position: i, Field: "title"}
		}
		if strings.TrimSpace(p.Abstract) == "" {
			return &ValidationError{Expected: expected, Got: len(papers), Position: i, Field: "abstract"}
		}
	}
	return nil
}

// AbstractSummary returns a prefix of the abstract of at most limit bytes,
// used for degraded metadata records. The cut backs off to a rune boundary
// so the result is always valid UTF-8.
func (p Paper) AbstractSummary(limit int) string {
	if len(p.Abstract) <= limit {
		return p.Abstract
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(p.Abstract[cut]) {
		cut--
	}
	return p.Abstract[:cut]
}
