package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scholarly-group/screening-cli/internal/config"
	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/internal/store"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

// Executor drives the six screening stages in strict order over an
// immutable snapshot sequence. The state machine is fail-fast and
// non-resumable: the first stage error is appended to the snapshot's error
// list and the run aborts with no partial results promoted to the response.
type Executor struct {
	cfg   *config.Config
	gw    *gateway
	store store.Store // nil disables run persistence
}

// New creates an Executor. st may be nil when run persistence is not wanted.
func New(cfg *config.Config, client anthropic.Client, st store.Store) *Executor {
	return &Executor{
		cfg:   cfg,
		gw:    newGateway(client, cfg.Anthropic, cfg.Retry),
		store: st,
	}
}

func (e *Executor) workers() int {
	if e.cfg.Pipeline.Workers > 0 {
		return e.cfg.Pipeline.Workers
	}
	return 8
}

func (e *Executor) topN() int {
	if e.cfg.Pipeline.TopN > 0 {
		return e.cfg.Pipeline.TopN
	}
	return 10
}

// BatchSize returns the required input batch size.
func (e *Executor) BatchSize() int {
	if e.cfg.Pipeline.BatchSize > 0 {
		return e.cfg.Pipeline.BatchSize
	}
	return 50
}

// ValidateInput is the first stage: the batch must hold exactly BatchSize
// papers, each with a title and an abstract. Runs before any gateway call.
func (e *Executor) ValidateInput(_ context.Context, s Snapshot) (Snapshot, error) {
	if err := model.ValidateBatch(s.Papers, e.BatchSize()); err != nil {
		return s, err
	}
	return s.withStep(StepInputValidated), nil
}

// stage pairs a stage name with its transformation and the run status it
// reports while executing.
type stage struct {
	name   string
	status model.RunStatus
	fn     func(context.Context, Snapshot) (Snapshot, error)
}

func (e *Executor) stages() []stage {
	return []stage{
		{"validate_input", model.RunStatusValidating, e.ValidateInput},
		{"extract_metadata", model.RunStatusExtracting, e.ExtractMetadata},
		{"generate_criteria", model.RunStatusGeneratingCriteria, e.GenerateCriteria},
		{"evaluate_papers", model.RunStatusEvaluating, e.EvaluatePapers},
		{"aggregate_statistics", model.RunStatusAggregating, e.AggregateStatistics},
		{"rank_select", model.RunStatusSelecting, e.RankAndSelect},
	}
}

// Run executes the full screening pipeline for one batch. The returned
// envelope is always non-nil; on a stage failure Success is false, the
// failing stage's message is in Errors, and no selected papers are included.
func (e *Executor) Run(ctx context.Context, papers []model.Paper) (*model.ScreeningResult, error) {
	log := zap.L().With(zap.Int("papers", len(papers)))
	log.Info("pipeline: starting screening run")

	var run *model.Run
	if e.store != nil {
		r, err := e.store.CreateRun(ctx, len(papers))
		if err != nil {
			log.Warn("pipeline: failed to create run record", zap.Error(err))
		} else {
			run = r
		}
	}

	setStatus := func(status model.RunStatus) {
		if run == nil {
			return
		}
		if err := e.store.UpdateRunStatus(ctx, run.ID, status); err != nil {
			log.Warn("pipeline: failed to update run status", zap.Error(err))
		}
	}

	snap := NewSnapshot(papers)
	var stageResults []model.StageResult

	for _, st := range e.stages() {
		setStatus(st.status)

		start := time.Now()
		usageBefore := snap.Usage
		next, err := st.fn(ctx, snap)
		duration := time.Since(start).Milliseconds()

		sr := model.StageResult{
			Name:       st.name,
			Status:     "complete",
			DurationMS: duration,
		}
		sr.TokenUsage = model.TokenUsage{
			InputTokens:  next.Usage.InputTokens - usageBefore.InputTokens,
			OutputTokens: next.Usage.OutputTokens - usageBefore.OutputTokens,
		}

		if err != nil {
			sr.Status = "failed"
			sr.Error = err.Error()
			stageResults = append(stageResults, sr)
			log.Error("pipeline: stage failed",
				zap.String("stage", st.name),
				zap.Int64("duration_ms", duration),
				zap.Error(err),
			)

			next.Errors = append(next.Errors, err.Error())
			result := e.buildResult(next, stageResults, false)
			setStatus(model.RunStatusFailed)
			e.saveResult(ctx, run, result)
			return result, err
		}

		stageResults = append(stageResults, sr)
		log.Info("pipeline: stage complete",
			zap.String("stage", st.name),
			zap.Int64("duration_ms", duration),
		)
		snap = next
	}

	result := e.buildResult(snap, stageResults, true)
	setStatus(model.RunStatusComplete)
	e.saveResult(ctx, run, result)

	log.Info("pipeline: screening run complete",
		zap.Int("selected", result.SelectedPapersCount),
		zap.Int("input_tokens", result.TotalTokens.InputTokens),
		zap.Int("output_tokens", result.TotalTokens.OutputTokens),
	)

	return result, nil
}

// buildResult assembles the response envelope from a snapshot. Failed runs
// never surface partial selections.
func (e *Executor) buildResult(s Snapshot, stages []model.StageResult, success bool) *model.ScreeningResult {
	result := &model.ScreeningResult{
		Success:          success,
		WorkflowStep:     string(s.Step),
		InputPapersCount: len(s.Papers),
		Stages:           stages,
		TotalTokens:      s.Usage,
		Errors:           s.Errors,
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if !success {
		return result
	}

	result.GeneratedCriteria = s.Criteria
	result.CriteriaStatistics = s.Statistics
	result.SelectedPapers = s.Selected
	result.SelectedPapersCount = len(s.Selected)
	return result
}

func (e *Executor) saveResult(ctx context.Context, run *model.Run, result *model.ScreeningResult) {
	if run == nil {
		return
	}
	if err := e.store.UpdateRunResult(ctx, run.ID, result); err != nil {
		zap.L().Warn("pipeline: failed to save run result",
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
	}
}
