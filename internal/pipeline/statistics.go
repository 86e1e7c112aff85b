package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/scholarly-group/screening-cli/internal/model"
)

// AggregateStatistics is the pure reduction stage: for every criterion,
// tally the batch's Yes/Maybe/No responses and record a traceability
// reference per paper in the matching bucket. Invariant: each criterion's
// bucket counts sum to the batch size.
func (e *Executor) AggregateStatistics(_ context.Context, s Snapshot) (Snapshot, error) {
	stats := make(map[int]model.CriterionStats, len(s.Criteria))
	for _, c := range s.Criteria {
		stats[c.ID] = model.CriterionStats{
			CriterionID: c.ID,
			Criterion:   c.Criterion,
			YesPapers:   []model.PaperRef{},
			MaybePapers: []model.PaperRef{},
			NoPapers:    []model.PaperRef{},
		}
	}

	for _, pe := range s.Evaluations {
		for _, ev := range pe.Evaluations {
			cs, ok := stats[ev.CriterionID]
			if !ok {
				// Unknown criterion ids cannot survive structural validation;
				// skip rather than invent a bucket.
				continue
			}
			ref := model.PaperRef{PaperID: pe.PaperID, Title: pe.Title, Reasoning: ev.Reasoning}
			switch ev.Response {
			case model.ResponseYes:
				cs.YesCount++
				cs.YesPapers = append(cs.YesPapers, ref)
			case model.ResponseMaybe:
				cs.MaybeCount++
				cs.MaybePapers = append(cs.MaybePapers, ref)
			default:
				cs.NoCount++
				cs.NoPapers = append(cs.NoPapers, ref)
			}
			stats[ev.CriterionID] = cs
		}
	}

	for id, cs := range stats {
		if cs.Total() != len(s.Evaluations) {
			zap.L().Warn("statistics: criterion tally does not cover batch",
				zap.Int("criterion_id", id),
				zap.Int("total", cs.Total()),
				zap.Int("papers", len(s.Evaluations)),
			)
		}
	}

	s.Statistics = stats
	return s.withStep(StepStatisticsComputed), nil
}
