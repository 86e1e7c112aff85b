package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/scholarly-group/screening-cli/internal/pipeline"
	"github.com/scholarly-group/screening-cli/internal/store"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

// initStore opens the configured store and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}

// initExecutor wires the gateway client and store into a pipeline executor.
// st may be nil for commands that do not persist runs.
func initExecutor(st store.Store) (*pipeline.Executor, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic key is not configured (set SCREENING_ANTHROPIC_KEY)")
	}
	client := anthropic.NewClient(cfg.Anthropic.Key)
	return pipeline.New(cfg, client, st), nil
}
