package model

// CriteriaCount is the fixed number of screening criteria generated per run.
// Evaluation and scoring assume exactly this many criterion slots, so a
// generation result of any other length is fatal.
const CriteriaCount = 6

// Criterion is one Yes/Maybe/No screening question generated for a batch.
type Criterion struct {
	ID              int    `json:"id"` // 1..CriteriaCount
	Criterion       string `json:"criterion"`
	Description     string `json:"description"`
	EvaluationFocus string `json:"evaluation_focus"`
}
