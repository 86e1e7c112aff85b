package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/scholarly-group/screening-cli/internal/config"
	"github.com/scholarly-group/screening-cli/internal/resilience"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

// gateway wraps the text-generation client with the cross-cutting policies
// every stage shares: a global rate limit across worker goroutines, bounded
// retry with backoff on transient failures, and a per-request timeout.
type gateway struct {
	client  anthropic.Client
	cfg     config.AnthropicConfig
	retry   resilience.RetryConfig
	limiter *rate.Limiter
}

func newGateway(client anthropic.Client, aiCfg config.AnthropicConfig, retryCfg config.RetryConfig) *gateway {
	rps := aiCfg.RequestsPerSec
	if rps <= 0 {
		rps = 5.0
	}
	return &gateway{
		client: client,
		cfg:    aiCfg,
		retry: resilience.RetryConfig{
			MaxAttempts:    retryCfg.MaxAttempts,
			InitialBackoff: time.Duration(retryCfg.InitialBackoffMS) * time.Millisecond,
			MaxBackoff:     time.Duration(retryCfg.MaxBackoffMS) * time.Millisecond,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// generate performs one rate-limited, retried round trip and returns the
// response text. Callers own schema validation of the returned text.
func (g *gateway) generate(ctx context.Context, stage string, system []anthropic.SystemBlock, prompt string) (string, anthropic.TokenUsage, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", anthropic.TokenUsage{}, eris.Wrap(err, "gateway: rate limit wait")
	}

	retryCfg := g.retry
	retryCfg.OnRetry = resilience.RetryLogger(stage, "create_message")

	resp, err := resilience.Do(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		callCtx := ctx
		if g.cfg.RequestTimeoutS > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, time.Duration(g.cfg.RequestTimeoutS)*time.Second)
			defer cancel()
		}
		return g.client.CreateMessage(callCtx, anthropic.MessageRequest{
			Model:     g.cfg.Model,
			MaxTokens: g.cfg.MaxTokens,
			System:    system,
			Messages: []anthropic.Message{
				{Role: "user", Content: prompt},
			},
		})
	})
	if err != nil {
		return "", anthropic.TokenUsage{}, eris.Wrapf(err, "gateway: %s", stage)
	}

	return anthropic.ExtractText(resp), resp.Usage, nil
}
