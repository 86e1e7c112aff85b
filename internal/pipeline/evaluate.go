package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

const evaluationSystemText = `You are a systematic-review screener. Judge one paper against each screening criterion with Yes, Maybe, or No and a one-sentence reasoning. Return only a valid JSON object.`

const evaluationPrompt = `Evaluate this paper against each of the %d screening criteria.

Paper %d: %s

Abstract:
%s

Criteria:
%s

Return a JSON object:
{"paper_id": %d, "title": "...", "evaluations": [{"criterion_id": 1, "response": "Yes|Maybe|No", "reasoning": "..."}, ... one entry per criterion ...]}`

// EvaluatePapers runs the evaluation stage: one gateway request per paper
// covering all criteria, over a bounded worker pool. Two containment rules
// apply per paper: a response that fails structural validation (missing or
// id-incomplete evaluations list) is replaced by the all-Maybe fallback, and
// any unrecognized response value is coerced to No. Neither aborts the stage.
func (e *Executor) EvaluatePapers(ctx context.Context, s Snapshot) (Snapshot, error) {
	systemBlocks := anthropic.BuildCachedSystemBlocks(evaluationSystemText)
	criteriaBlock := renderCriteria(s.Criteria)

	results := make([]model.PaperEvaluation, len(s.Papers))
	var mu sync.Mutex
	var usage model.TokenUsage

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	for i, paper := range s.Papers {
		g.Go(func() error {
			prompt := fmt.Sprintf(evaluationPrompt,
				len(s.Criteria), i+1, paper.Title, paper.Abstract, criteriaBlock, i+1)

			text, u, err := e.gw.generate(gCtx, "evaluate_papers", systemBlocks, prompt)
			mu.Lock()
			usage.Add(model.TokenUsage{InputTokens: int(u.InputTokens), OutputTokens: int(u.OutputTokens)})
			mu.Unlock()

			if err != nil {
				zap.L().Warn("evaluate: gateway call failed, using fallback evaluation",
					zap.Int("paper_id", i+1),
					zap.Error(err),
				)
				results[i] = model.FallbackEvaluation(i+1, i, paper.Title, s.Criteria)
				return gCtx.Err()
			}

			results[i] = parseEvaluation(text, paper, i, s.Criteria)
			return nil
		})
	}

	// Tokens spent before cancellation still count toward the run total.
	if err := g.Wait(); err != nil {
		return s.addUsage(usage), err
	}

	zap.L().Info("evaluate: stage complete",
		zap.Int("papers", len(results)),
		zap.Int("fallbacks", countEvaluationFallbacks(results)),
	)

	s.Evaluations = results
	return s.addUsage(usage).withStep(StepEvaluated), nil
}

func renderCriteria(criteria []model.Criterion) string {
	var b strings.Builder
	for _, c := range criteria {
		fmt.Fprintf(&b, "%d. %s: %s (focus: %s)\n", c.ID, c.Criterion, c.Description, c.EvaluationFocus)
	}
	return b.String()
}

// evaluationWire mirrors the JSON shape the evaluation prompt requests.
type evaluationWire struct {
	PaperID     int    `json:"paper_id"`
	Title       string `json:"title"`
	Evaluations []struct {
		CriterionID int    `json:"criterion_id"`
		Response    string `json:"response"`
		Reasoning   string `json:"reasoning"`
	} `json:"evaluations"`
}

// parseEvaluation decodes one paper's evaluation response. Identity fields
// come from the input batch, never from the model: paper_id stays a stable
// 1-based index regardless of what the response claims. A response whose
// evaluations list is missing, has the wrong length, or does not cover every
// criterion id exactly once is treated as a parse failure and replaced by
// the all-Maybe fallback.
func parseEvaluation(text string, paper model.Paper, index int, criteria []model.Criterion) model.PaperEvaluation {
	var wire evaluationWire
	if err := json.Unmarshal([]byte(cleanJSON(text)), &wire); err != nil {
		zap.L().Warn("evaluate: failed to parse response JSON",
			zap.Int("paper_id", index+1),
			zap.Error(err),
		)
		return model.FallbackEvaluation(index+1, index, paper.Title, criteria)
	}

	pe := model.PaperEvaluation{
		PaperID:       index + 1,
		OriginalIndex: index,
		Title:         paper.Title,
		Evaluations:   make([]model.CriterionEvaluation, 0, len(wire.Evaluations)),
	}
	for _, ev := range wire.Evaluations {
		pe.Evaluations = append(pe.Evaluations, model.CriterionEvaluation{
			CriterionID: ev.CriterionID,
			Response:    model.SanitizeResponse(ev.Response),
			Reasoning:   ev.Reasoning,
		})
	}

	if !pe.Complete(len(criteria)) {
		zap.L().Warn("evaluate: response failed structural validation",
			zap.Int("paper_id", index+1),
			zap.Int("entries", len(pe.Evaluations)),
		)
		return model.FallbackEvaluation(index+1, index, paper.Title, criteria)
	}

	return pe
}

func countEvaluationFallbacks(results []model.PaperEvaluation) int {
	n := 0
	for _, r := range results {
		if r.Fallback {
			n++
		}
	}
	return n
}
