package model

// Response is a single Yes/Maybe/No screening judgment.
type Response string

const (
	ResponseYes   Response = "Yes"
	ResponseMaybe Response = "Maybe"
	ResponseNo    Response = "No"
)

// FallbackReasoning is the reasoning string attached to substituted
// evaluations when a paper's gateway response could not be parsed.
const FallbackReasoning = "evaluation failed"

// Valid reports whether r is one of the three recognized responses.
func (r Response) Valid() bool {
	switch r {
	case ResponseYes, ResponseMaybe, ResponseNo:
		return true
	}
	return false
}

// SanitizeResponse coerces any unrecognized response value to No. The
// conservative bias: output we cannot interpret never counts in a paper's
// favor. Applied independently per entry, never aborting the stage.
func SanitizeResponse(raw string) Response {
	r := Response(raw)
	if r.Valid() {
		return r
	}
	return ResponseNo
}

// CriterionEvaluation is one paper's judgment against one criterion.
type CriterionEvaluation struct {
	CriterionID int      `json:"criterion_id"`
	Response    Response `json:"response"`
	Reasoning   string   `json:"reasoning"`
}

// PaperEvaluation holds one paper's judgments against all criteria. A valid
// record contains exactly CriteriaCount entries covering each criterion id
// once; order is not significant.
type PaperEvaluation struct {
	PaperID       int                   `json:"paper_id"`
	OriginalIndex int                   `json:"original_index"`
	Title         string                `json:"title"`
	Evaluations   []CriterionEvaluation `json:"evaluations"`

	// Fallback marks a substituted all-Maybe record after a parse failure.
	Fallback bool `json:"fallback,omitempty"`
}

// Complete reports whether the evaluation covers every criterion id in
// [1, count] exactly once.
func (pe PaperEvaluation) Complete(count int) bool {
	if len(pe.Evaluations) != count {
		return false
	}
	seen := make(map[int]bool, count)
	for _, ev := range pe.Evaluations {
		if ev.CriterionID < 1 || ev.CriterionID > count || seen[ev.CriterionID] {
			return false
		}
		seen[ev.CriterionID] = true
	}
	return true
}

// Tally counts the paper's Yes/Maybe/No responses.
func (pe PaperEvaluation) Tally() (yes, maybe, no int) {
	for _, ev := range pe.Evaluations {
		switch ev.Response {
		case ResponseYes:
			yes++
		case ResponseMaybe:
			maybe++
		default:
			no++
		}
	}
	return yes, maybe, no
}

// FallbackEvaluation builds the conservative-middle substitute for a paper
// whose evaluation response failed structural validation: every criterion
// rated Maybe with the fixed failure reasoning.
func FallbackEvaluation(paperID, index int, title string, criteria []Criterion) PaperEvaluation {
	evals := make([]CriterionEvaluation, len(criteria))
	for i, c := range criteria {
		evals[i] = CriterionEvaluation{
			CriterionID: c.ID,
			Response:    ResponseMaybe,
			Reasoning:   FallbackReasoning,
		}
	}
	return PaperEvaluation{
		PaperID:       paperID,
		OriginalIndex: index,
		Title:         title,
		Evaluations:   evals,
		Fallback:      true,
	}
}
