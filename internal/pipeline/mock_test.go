package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/scholarly-group/screening-cli/internal/config"
	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/internal/store"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// anthropicRequest shortens handler signatures in the stage tests.
type anthropicRequest = anthropic.MessageRequest

// scriptedClient routes each request to a handler based on its content. The
// per-paper stages issue requests concurrently, so handlers must be
// goroutine-safe.
type scriptedClient struct {
	calls  atomic.Int64
	handle func(req anthropicRequest) (string, error)
}

func (c *scriptedClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	c.calls.Add(1)
	text, err := c.handle(req)
	if err != nil {
		return nil, err
	}
	return textResponse(text, 10, 5), nil
}

func textResponse(text string, in, out int64) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		ID:      "msg_test",
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: in, OutputTokens: out},
	}
}

func promptOf(req anthropic.MessageRequest) string {
	if len(req.Messages) == 0 {
		return ""
	}
	return req.Messages[0].Content
}

func isCriteriaRequest(req anthropic.MessageRequest) bool {
	return strings.Contains(promptOf(req), "generate exactly")
}

func isEvaluationRequest(req anthropic.MessageRequest) bool {
	return strings.Contains(promptOf(req), "Evaluate this paper")
}

func isMetadataRequest(req anthropic.MessageRequest) bool {
	return strings.Contains(promptOf(req), "Extract structured metadata")
}

// --- Canned responses ---

func metadataJSON(title string) string {
	return fmt.Sprintf(`{
		"title": %q,
		"authors": ["A. Author", "B. Author"],
		"journal": "Journal of Testing",
		"year": "2024",
		"keywords": ["testing", "pipelines"],
		"research_domain": "software engineering",
		"methodology": "experiment",
		"sample_size": "120",
		"study_type": "empirical",
		"main_findings": "it works",
		"limitations": "small sample",
		"abstract_summary": "a summary"
	}`, title)
}

func criteriaJSON(count int) string {
	items := make([]string, count)
	for i := range items {
		items[i] = fmt.Sprintf(
			`{"id": %d, "criterion": "Criterion %d", "description": "desc %d", "evaluation_focus": "focus %d"}`,
			i+1, i+1, i+1, i+1,
		)
	}
	return "[" + strings.Join(items, ",") + "]"
}

// evaluationJSON renders a response whose six entries carry the given
// responses in criterion id order.
func evaluationJSON(paperID int, responses []string) string {
	evals := make([]string, len(responses))
	for i, r := range responses {
		evals[i] = fmt.Sprintf(`{"criterion_id": %d, "response": %q, "reasoning": "because"}`, i+1, r)
	}
	return fmt.Sprintf(`{"paper_id": %d, "title": "whatever", "evaluations": [%s]}`, paperID, strings.Join(evals, ","))
}

func allResponses(r string) []string {
	out := make([]string, model.CriteriaCount)
	for i := range out {
		out[i] = r
	}
	return out
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateRun(ctx context.Context, papersCount int) (*model.Run, error) {
	args := m.Called(ctx, papersCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *mockStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	args := m.Called(ctx, runID, status)
	return args.Error(0)
}

func (m *mockStore) UpdateRunResult(ctx context.Context, runID string, result *model.ScreeningResult) error {
	args := m.Called(ctx, runID, result)
	return args.Error(0)
}

func (m *mockStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *mockStore) ListRuns(ctx context.Context, filter store.RunFilter) ([]model.Run, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Run), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Helpers ---

// testConfig returns a config sized for fast tests: a tiny batch, no retry
// sleep, and an effectively unlimited rate.
func testConfig(batchSize int) *config.Config {
	return &config.Config{
		Anthropic: config.AnthropicConfig{
			Model:          "claude-haiku-4-5-20251001",
			MaxTokens:      1024,
			RequestsPerSec: 10000,
		},
		Pipeline: config.PipelineConfig{
			BatchSize: batchSize,
			TopN:      2,
			Workers:   4,
		},
		Retry: config.RetryConfig{
			MaxAttempts:      1,
			InitialBackoffMS: 1,
			MaxBackoffMS:     1,
		},
	}
}

func testBatch(n int) []model.Paper {
	papers := make([]model.Paper, n)
	for i := range papers {
		papers[i] = model.Paper{
			Title:    fmt.Sprintf("Test Paper %d", i+1),
			Abstract: fmt.Sprintf("Abstract of test paper %d with enough detail to screen.", i+1),
		}
	}
	return papers
}

// interface compliance
var (
	_ anthropic.Client = (*mockAnthropicClient)(nil)
	_ anthropic.Client = (*scriptedClient)(nil)
	_ store.Store      = (*mockStore)(nil)
)
