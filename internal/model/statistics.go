package model

// PaperRef is a traceability back-reference from a statistics bucket to the
// paper that produced the judgment. It does not own the paper data.
type PaperRef struct {
	PaperID   int    `json:"paper_id"`
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}

// CriterionStats tallies one criterion's Yes/Maybe/No responses across the
// whole batch, with per-bucket paper references. Invariant after
// aggregation: YesCount + MaybeCount + NoCount == batch size.
type CriterionStats struct {
	CriterionID int        `json:"criterion_id"`
	Criterion   string     `json:"criterion"`
	YesCount    int        `json:"yes_count"`
	MaybeCount  int        `json:"maybe_count"`
	NoCount     int        `json:"no_count"`
	YesPapers   []PaperRef `json:"yes_papers"`
	MaybePapers []PaperRef `json:"maybe_papers"`
	NoPapers    []PaperRef `json:"no_papers"`
}

// Total returns the sum of all three buckets.
func (s CriterionStats) Total() int {
	return s.YesCount + s.MaybeCount + s.NoCount
}
