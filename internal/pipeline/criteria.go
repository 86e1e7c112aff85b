package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

const criteriaSystemText = `You are a systematic-review methodologist. Given metadata for a batch of research papers, design screening criteria that separate the most relevant and rigorous papers from the rest. Return only a JSON array.`

const criteriaPrompt = `Based on the following paper metadata, generate exactly %d screening criteria for selecting the strongest papers from this batch.

Papers:
%s

Return a JSON array of exactly %d objects, each with keys: id (1-%d), criterion (short name), description, evaluation_focus (what an evaluator should look at when judging a paper against this criterion).`

// GenerateCriteria runs the criteria generation stage: a single aggregate
// request over a compact summary of all extracted metadata. Unlike the
// per-paper stages there is no safe default here; anything other than
// exactly CriteriaCount parsed criteria aborts the run.
func (e *Executor) GenerateCriteria(ctx context.Context, s Snapshot) (Snapshot, error) {
	prompt := fmt.Sprintf(criteriaPrompt,
		model.CriteriaCount,
		summarizeMetadata(s.Metadata),
		model.CriteriaCount,
		model.CriteriaCount,
	)

	text, u, err := e.gw.generate(ctx, "generate_criteria", anthropic.BuildCachedSystemBlocks(criteriaSystemText), prompt)
	s = s.addUsage(model.TokenUsage{InputTokens: int(u.InputTokens), OutputTokens: int(u.OutputTokens)})
	if err != nil {
		return s, eris.Wrap(err, "criteria: generate")
	}

	criteria, err := parseCriteria(text)
	if err != nil {
		return s, err
	}

	zap.L().Info("criteria: generation complete", zap.Int("criteria", len(criteria)))

	s.Criteria = criteria
	return s.withStep(StepCriteriaGenerated), nil
}

// summarizeMetadata renders the compact per-paper view used in the criteria
// prompt: title, domain, methodology, study type, keywords.
func summarizeMetadata(records []model.PaperMetadata) string {
	var b strings.Builder
	for _, md := range records {
		fmt.Fprintf(&b, "%d. %s\n", md.PaperID, md.Title)
		fmt.Fprintf(&b, "   domain: %s | methodology: %s | study type: %s\n",
			md.ResearchDomain, md.Methodology, md.StudyType)
		if len(md.Keywords) > 0 {
			fmt.Fprintf(&b, "   keywords: %s\n", strings.Join(md.Keywords, ", "))
		}
	}
	return b.String()
}

// parseCriteria decodes the criteria array and enforces the fixed-count
// shape. IDs are renumbered 1..CriteriaCount in sequence so downstream
// stages never depend on the model's own numbering.
func parseCriteria(text string) ([]model.Criterion, error) {
	var wire []struct {
		Criterion       string `json:"criterion"`
		Description     string `json:"description"`
		EvaluationFocus string `json:"evaluation_focus"`
	}
	if err := json.Unmarshal([]byte(cleanJSONArray(text)), &wire); err != nil {
		return nil, eris.Wrap(err, "criteria: parse response")
	}

	if len(wire) != model.CriteriaCount {
		return nil, &model.CriteriaShapeError{Want: model.CriteriaCount, Got: len(wire)}
	}

	criteria := make([]model.Criterion, len(wire))
	for i, w := range wire {
		criteria[i] = model.Criterion{
			ID:              i + 1,
			Criterion:       w.Criterion,
			Description:     w.Description,
			EvaluationFocus: w.EvaluationFocus,
		}
	}
	return criteria, nil
}
