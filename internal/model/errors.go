package model

import "fmt"

// ValidationError reports a malformed input batch: wrong paper count or a
// paper missing a required field. It is fatal and aborts the run before any
// stage executes.
type ValidationError struct {
	Expected int    // expected batch size
	Got      int    // actual batch size
	Position int    // 0-based index of the offending paper, -1 for count errors
	Field    string // missing field name, "" for count errors
}

func (e *ValidationError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("validate: expected exactly %d papers, got %d", e.Expected, e.Got)
	}
	return fmt.Sprintf("validate: paper %d is missing required field %q", e.Position+1, e.Field)
}

// CriteriaShapeError reports that criteria generation did not yield exactly
// the required number of criteria. It is fatal: evaluation and scoring
// hard-code the fixed criterion count, so there is no safe default.
type CriteriaShapeError struct {
	Want int
	Got  int
}

func (e *CriteriaShapeError) Error() string {
	return fmt.Sprintf("criteria: expected exactly %d criteria, got %d", e.Want, e.Got)
}
