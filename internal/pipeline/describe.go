package pipeline

// StageDescription is static metadata about one pipeline stage.
type StageDescription struct {
	Name           string `json:"name"`
	Responsibility string `json:"responsibility"`
}

// DescribeStages returns static metadata about the six stages in execution
// order. No pipeline state is involved.
func DescribeStages() []StageDescription {
	return []StageDescription{
		{
			Name:           "validate_input",
			Responsibility: "Check the batch holds exactly the required number of papers, each with a title and abstract.",
		},
		{
			Name:           "extract_metadata",
			Responsibility: "Extract structured metadata per paper via the text-generation service, degrading to a sentinel record on parse failure.",
		},
		{
			Name:           "generate_criteria",
			Responsibility: "Generate exactly six screening criteria from the batch's combined metadata; any other shape aborts the run.",
		},
		{
			Name:           "evaluate_papers",
			Responsibility: "Judge every paper Yes/Maybe/No against each criterion, coercing unrecognized responses to No and substituting an all-Maybe fallback on parse failure.",
		},
		{
			Name:           "aggregate_statistics",
			Responsibility: "Tally per-criterion Yes/Maybe/No counts with per-paper traceability references.",
		},
		{
			Name:           "rank_select",
			Responsibility: "Score papers on tiered eligibility plus response bonuses, rank stably, and select the top papers.",
		},
	}
}
