package model

// Eligibility tier base scores. Tiers are discrete; the additive bonus
// (10 per Yes, 5 per Maybe) is layered on top for all papers, eligible or
// not. The tier gaps dominate the bonus range so tier order is preserved.
const (
	TierScoreAllYes    = 1000 // 6 Yes
	TierScoreFiveYes   = 900  // 5 Yes, 1 Maybe
	TierScoreFourYes   = 800  // 4 Yes, 2 Maybe
	TierScoreThreshold = 700  // >=3 Yes and Yes+Maybe >= 5
	YesBonusPerCount   = 10
	MaybeBonusPerCount = 5
)

// ScoredPaper is one paper's tallied evaluation plus its eligibility score.
type ScoredPaper struct {
	PaperID          int                   `json:"paper_id"`
	OriginalIndex    int                   `json:"original_index"`
	YesCount         int                   `json:"yes_count"`
	MaybeCount       int                   `json:"maybe_count"`
	NoCount          int                   `json:"no_count"`
	EligibilityScore int                   `json:"eligibility_score"`
	IsEligible       bool                  `json:"is_eligible"`
	Evaluations      []CriterionEvaluation `json:"evaluations"`
}

// CriteriaResults is the compact tally shown per selected paper.
type CriteriaResults struct {
	YesCount   int `json:"yes_count"`
	MaybeCount int `json:"maybe_count"`
	NoCount    int `json:"no_count"`
}

// SelectedPaper joins a scored paper with its original input and metadata
// for the final response. Rank is 1-based by final sorted position.
type SelectedPaper struct {
	Rank                int                   `json:"rank"`
	PaperID             int                   `json:"paper_id"`
	Title               string                `json:"title"`
	Abstract            string                `json:"abstract"`
	EligibilityScore    int                   `json:"eligibility_score"`
	IsEligible          bool                  `json:"is_eligible"`
	CriteriaResults     CriteriaResults       `json:"criteria_results"`
	DetailedEvaluations []CriterionEvaluation `json:"detailed_evaluations"`
	Metadata            PaperMetadata         `json:"metadata"`
}

// EligibilityScore computes the tiered base score, eligibility flag, and
// final score (base + bonus) for a yes/maybe tally.
func EligibilityScore(yes, maybe int) (score int, eligible bool) {
	var base int
	switch {
	case yes == CriteriaCount:
		base, eligible = TierScoreAllYes, true
	case yes == 5 && maybe == 1:
		base, eligible = TierScoreFiveYes, true
	case yes == 4 && maybe == 2:
		base, eligible = TierScoreFourYes, true
	case yes >= 3 && yes+maybe >= 5:
		base, eligible = TierScoreThreshold, true
	}
	// Bonus applies to every paper, including ineligible ones.
	return base + YesBonusPerCount*yes + MaybeBonusPerCount*maybe, eligible
}
