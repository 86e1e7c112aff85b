package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarly-group/screening-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_CreateAndGetRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	created, err := s.CreateRun(ctx, 50)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.RunStatusQueued, created.Status)

	got, err := s.GetRun(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 50, got.PapersCount)
	assert.Equal(t, model.RunStatusQueued, got.Status)
	assert.Nil(t, got.Result)
}

func TestSQLiteStore_GetRun_NotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetRun(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_UpdateRunStatus(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, 50)
	require.NoError(t, err)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusEvaluating))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusEvaluating, got.Status)
}

func TestSQLiteStore_UpdateRunStatus_NotFound(t *testing.T) {
	s := newTestSQLite(t)
	err := s.UpdateRunStatus(context.Background(), "missing", model.RunStatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_UpdateRunResult_RoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, 50)
	require.NoError(t, err)

	result := &model.ScreeningResult{
		Success:             true,
		WorkflowStep:        "selected",
		InputPapersCount:    50,
		SelectedPapersCount: 10,
		TotalTokens:         model.TokenUsage{InputTokens: 1200, OutputTokens: 800},
		Errors:              []string{},
	}
	require.NoError(t, s.UpdateRunResult(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, 10, got.Result.SelectedPapersCount)
	assert.Equal(t, 1200, got.Result.TotalTokens.InputTokens)
}

func TestSQLiteStore_UpdateRunResult_FailureSetsFailedStatus(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, 50)
	require.NoError(t, err)

	result := &model.ScreeningResult{
		Success: false,
		Errors:  []string{"criteria: expected exactly 6 criteria, got 5"},
	}
	require.NoError(t, s.UpdateRunResult(ctx, run.ID, result))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	require.NotNil(t, got.Result)
	assert.NotEmpty(t, got.Result.Errors)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.CreateRun(ctx, 50)
	require.NoError(t, err)
	second, err := s.CreateRun(ctx, 50)
	require.NoError(t, err)
	require.NoError(t, s.UpdateRunStatus(ctx, second.ID, model.RunStatusFailed))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, second.ID, failed[0].ID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
