package pipeline

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/scholarly-group/screening-cli/internal/model"
)

// RankAndSelect is the pure selection stage: score every paper's evaluation
// tally on the eligibility tiers, rank deterministically, and select the
// final set.
//
// Ordering is descending by final score with a stable sort over the
// input-ordered slice, so papers with equal scores keep their original input
// order and a rerun over the same evaluations reproduces the same ranking.
func (e *Executor) RankAndSelect(_ context.Context, s Snapshot) (Snapshot, error) {
	scored := ScoreEvaluations(s.Evaluations)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].EligibilityScore > scored[j].EligibilityScore
	})

	selected := SelectTop(scored, e.topN())

	// Join each selected paper with its original input and metadata.
	out := make([]model.SelectedPaper, len(selected))
	for rank, sp := range selected {
		paper := s.Papers[sp.OriginalIndex]
		out[rank] = model.SelectedPaper{
			Rank:             rank + 1,
			PaperID:          sp.PaperID,
			Title:            paper.Title,
			Abstract:         paper.Abstract,
			EligibilityScore: sp.EligibilityScore,
			IsEligible:       sp.IsEligible,
			CriteriaResults: model.CriteriaResults{
				YesCount:   sp.YesCount,
				MaybeCount: sp.MaybeCount,
				NoCount:    sp.NoCount,
			},
			DetailedEvaluations: sp.Evaluations,
			Metadata:            s.Metadata[sp.OriginalIndex],
		}
	}

	zap.L().Info("select: ranking complete",
		zap.Int("eligible", countEligible(scored)),
		zap.Int("selected", len(out)),
	)

	s.Scored = scored
	s.Selected = out
	return s.withStep(StepSelected), nil
}

// ScoreEvaluations tallies each paper's responses and computes its tiered
// eligibility score. Output preserves input order.
func ScoreEvaluations(evaluations []model.PaperEvaluation) []model.ScoredPaper {
	scored := make([]model.ScoredPaper, len(evaluations))
	for i, pe := range evaluations {
		yes, maybe, no := pe.Tally()
		score, eligible := model.EligibilityScore(yes, maybe)
		scored[i] = model.ScoredPaper{
			PaperID:          pe.PaperID,
			OriginalIndex:    pe.OriginalIndex,
			YesCount:         yes,
			MaybeCount:       maybe,
			NoCount:          no,
			EligibilityScore: score,
			IsEligible:       eligible,
			Evaluations:      pe.Evaluations,
		}
	}
	return scored
}

// SelectTop applies the selection rule to a score-sorted slice: the top n
// eligible papers when at least n are eligible; otherwise every eligible
// paper plus the highest-scoring ineligible ones, in sorted order, until n
// papers are selected or the pool runs out.
func SelectTop(sorted []model.ScoredPaper, n int) []model.ScoredPaper {
	var eligible, ineligible []model.ScoredPaper
	for _, sp := range sorted {
		if sp.IsEligible {
			eligible = append(eligible, sp)
		} else {
			ineligible = append(ineligible, sp)
		}
	}

	if len(eligible) >= n {
		return eligible[:n]
	}

	selected := eligible
	for _, sp := range ineligible {
		if len(selected) >= n {
			break
		}
		selected = append(selected, sp)
	}
	return selected
}

func countEligible(scored []model.ScoredPaper) int {
	n := 0
	for _, sp := range scored {
		if sp.IsEligible {
			n++
		}
	}
	return n
}
