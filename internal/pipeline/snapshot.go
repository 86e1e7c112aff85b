package pipeline

import "github.com/scholarly-group/screening-cli/internal/model"

// Step labels the pipeline's linear state machine. Created is initial,
// Selected is the sole terminal success state; a stage failure is absorbing.
type Step string

const (
	StepCreated            Step = "created"
	StepInputValidated     Step = "input_validated"
	StepMetadataExtracted  Step = "metadata_extracted"
	StepCriteriaGenerated  Step = "criteria_generated"
	StepEvaluated          Step = "evaluated"
	StepStatisticsComputed Step = "statistics_computed"
	StepSelected           Step = "selected"
)

// Snapshot is the pipeline state after a stage. Stages are pure
// transformations Snapshot -> Snapshot: each stage reads only fields earlier
// stages produced and returns a new snapshot with its own fields set, so any
// stage can be tested in isolation.
type Snapshot struct {
	Step        Step
	Papers      []model.Paper
	Metadata    []model.PaperMetadata
	Criteria    []model.Criterion
	Evaluations []model.PaperEvaluation
	Statistics  map[int]model.CriterionStats
	Scored      []model.ScoredPaper
	Selected    []model.SelectedPaper
	Errors      []string
	Usage       model.TokenUsage
}

// NewSnapshot returns the initial snapshot for a batch of papers.
func NewSnapshot(papers []model.Paper) Snapshot {
	return Snapshot{
		Step:   StepCreated,
		Papers: papers,
	}
}

// withStep returns a copy of s advanced to the given step.
func (s Snapshot) withStep(step Step) Snapshot {
	s.Step = step
	return s
}

// addUsage returns a copy of s with usage accumulated.
func (s Snapshot) addUsage(u model.TokenUsage) Snapshot {
	s.Usage.Add(u)
	return s
}
