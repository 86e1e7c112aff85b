package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/scholarly-group/screening-cli/internal/model"
)

func sampleResult() *model.ScreeningResult {
	return &model.ScreeningResult{
		Success: true,
		GeneratedCriteria: []model.Criterion{
			{ID: 1, Criterion: "Relevance", Description: "On topic", EvaluationFocus: "topic match"},
			{ID: 2, Criterion: "Rigor", Description: "Sound methods", EvaluationFocus: "methodology"},
		},
		CriteriaStatistics: map[int]model.CriterionStats{
			1: {CriterionID: 1, Criterion: "Relevance", YesCount: 30, MaybeCount: 15, NoCount: 5},
			2: {CriterionID: 2, Criterion: "Rigor", YesCount: 20, MaybeCount: 20, NoCount: 10},
		},
		SelectedPapers: []model.SelectedPaper{
			{
				Rank:             1,
				PaperID:          7,
				Title:            "Best Paper",
				EligibilityScore: 1060,
				IsEligible:       true,
				CriteriaResults:  model.CriteriaResults{YesCount: 6},
				Metadata: model.PaperMetadata{
					Authors: []string{"A. Author", "B. Author"},
					Year:    "2024",
					Journal: "Journal of Testing",
				},
			},
		},
		SelectedPapersCount: 1,
		Stages: []model.StageResult{
			{Name: "validate_input", Status: "complete", DurationMS: 3},
			{Name: "extract_metadata", Status: "complete", DurationMS: 1200},
		},
	}
}

func TestWriteXLSX_SheetsAndContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(sampleResult(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	for _, name := range []string{"Criteria", "Statistics", "Selected Papers", "Stages"} {
		_, ok := f.Sheet[name]
		assert.True(t, ok, "missing sheet %q", name)
	}

	criteria := f.Sheet["Criteria"]
	require.True(t, len(criteria.Rows) >= 3)
	assert.Equal(t, "ID", criteria.Rows[0].Cells[0].String())
	assert.Equal(t, "Relevance", criteria.Rows[1].Cells[1].String())

	stats := f.Sheet["Statistics"]
	require.True(t, len(stats.Rows) >= 3)
	// Rows are ordered by criterion id.
	assert.Equal(t, "1", stats.Rows[1].Cells[0].String())
	assert.Equal(t, "30", stats.Rows[1].Cells[1].String())
	assert.Equal(t, "50", stats.Rows[1].Cells[4].String())

	selected := f.Sheet["Selected Papers"]
	require.True(t, len(selected.Rows) >= 2)
	assert.Equal(t, "Best Paper", selected.Rows[1].Cells[2].String())
	assert.Equal(t, "A. Author; B. Author", selected.Rows[1].Cells[8].String())
}

func TestWriteXLSX_BadPath(t *testing.T) {
	err := WriteXLSX(sampleResult(), "/nonexistent-dir/report.xlsx")
	assert.Error(t, err)
}
