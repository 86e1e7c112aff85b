package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarly-group/screening-cli/internal/model"
)

func TestAggregateStatistics_TalliesAndBuckets(t *testing.T) {
	exec := New(testConfig(3), &scriptedClient{}, nil)

	criteria, err := parseCriteria(criteriaJSON(6))
	require.NoError(t, err)

	snap := NewSnapshot(testBatch(3))
	snap.Criteria = criteria
	snap.Evaluations = []model.PaperEvaluation{
		evalWithTally(1, 0, 6, 0, 0),
		evalWithTally(2, 1, 0, 6, 0),
		evalWithTally(3, 2, 0, 0, 6),
	}
	snap.Evaluations[0].Title = "Yes Paper"
	snap.Evaluations[1].Title = "Maybe Paper"
	snap.Evaluations[2].Title = "No Paper"

	out, err := exec.AggregateStatistics(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, StepStatisticsComputed, out.Step)
	require.Len(t, out.Statistics, 6)

	for id, cs := range out.Statistics {
		assert.Equal(t, id, cs.CriterionID)
		assert.Equal(t, 1, cs.YesCount)
		assert.Equal(t, 1, cs.MaybeCount)
		assert.Equal(t, 1, cs.NoCount)
		assert.Equal(t, 3, cs.Total(), "bucket counts must sum to the batch size")

		require.Len(t, cs.YesPapers, 1)
		assert.Equal(t, 1, cs.YesPapers[0].PaperID)
		assert.Equal(t, "Yes Paper", cs.YesPapers[0].Title)
		require.Len(t, cs.MaybePapers, 1)
		assert.Equal(t, 2, cs.MaybePapers[0].PaperID)
		require.Len(t, cs.NoPapers, 1)
		assert.Equal(t, 3, cs.NoPapers[0].PaperID)
	}
}

func TestAggregateStatistics_EmptyBucketsNotNil(t *testing.T) {
	exec := New(testConfig(3), &scriptedClient{}, nil)

	criteria, err := parseCriteria(criteriaJSON(6))
	require.NoError(t, err)

	snap := NewSnapshot(testBatch(3))
	snap.Criteria = criteria
	snap.Evaluations = []model.PaperEvaluation{
		evalWithTally(1, 0, 6, 0, 0),
	}

	out, err := exec.AggregateStatistics(context.Background(), snap)
	require.NoError(t, err)

	for _, cs := range out.Statistics {
		assert.NotNil(t, cs.MaybePapers)
		assert.NotNil(t, cs.NoPapers)
		assert.Empty(t, cs.MaybePapers)
	}
}

func TestAggregateStatistics_IgnoresUnknownCriterionID(t *testing.T) {
	exec := New(testConfig(3), &scriptedClient{}, nil)

	criteria, err := parseCriteria(criteriaJSON(6))
	require.NoError(t, err)

	pe := evalWithTally(1, 0, 6, 0, 0)
	pe.Evaluations = append(pe.Evaluations, model.CriterionEvaluation{CriterionID: 42, Response: model.ResponseYes})

	snap := NewSnapshot(testBatch(3))
	snap.Criteria = criteria
	snap.Evaluations = []model.PaperEvaluation{pe}

	out, err := exec.AggregateStatistics(context.Background(), snap)
	require.NoError(t, err)
	assert.Len(t, out.Statistics, 6, "no bucket invented for an unknown id")
}
