package model

import "time"

// RunStatus represents the current state of a screening run.
type RunStatus string

const (
	RunStatusQueued             RunStatus = "queued"
	RunStatusValidating         RunStatus = "validating"
	RunStatusExtracting         RunStatus = "extracting_metadata"
	RunStatusGeneratingCriteria RunStatus = "generating_criteria"
	RunStatusEvaluating         RunStatus = "evaluating"
	RunStatusAggregating        RunStatus = "aggregating"
	RunStatusSelecting          RunStatus = "selecting"
	RunStatusComplete           RunStatus = "complete"
	RunStatusFailed             RunStatus = "failed"
)

// Run records one screening pipeline execution.
type Run struct {
	ID          string           `json:"id"`
	Status      RunStatus        `json:"status"`
	PapersCount int              `json:"papers_count"`
	Result      *ScreeningResult `json:"result,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TokenUsage tracks gateway token consumption across stages.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates another usage record.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// StageResult captures the outcome of one pipeline stage for observability.
type StageResult struct {
	Name       string     `json:"name"`
	Status     string     `json:"status"` // "complete" or "failed"
	DurationMS int64      `json:"duration_ms"`
	Error      string     `json:"error,omitempty"`
	TokenUsage TokenUsage `json:"token_usage"`
}

// ScreeningResult is the full response envelope of a pipeline run.
type ScreeningResult struct {
	Success             bool                   `json:"success"`
	WorkflowStep        string                 `json:"workflow_steps"`
	InputPapersCount    int                    `json:"input_papers_count"`
	GeneratedCriteria   []Criterion            `json:"generated_criteria"`
	CriteriaStatistics  map[int]CriterionStats `json:"criteria_statistics"`
	SelectedPapersCount int                    `json:"selected_papers_count"`
	SelectedPapers      []SelectedPaper        `json:"selected_papers"`
	Stages              []StageResult          `json:"stages,omitempty"`
	TotalTokens         TokenUsage             `json:"total_tokens"`
	Errors              []string               `json:"errors"`
}
