package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/pkg/anthropic"
)

const metadataSystemText = `You are a research librarian extracting structured metadata from paper abstracts. Return a valid JSON object with these keys: title, authors (array), journal, year, keywords (array), research_domain, methodology, sample_size, study_type, main_findings, limitations, abstract_summary. Use "Not specified" for information the abstract does not state.`

const metadataPrompt = `Extract structured metadata from this research paper.

Title: %s

Abstract:
%s

Return only the JSON object.`

// ExtractMetadata runs the metadata extraction stage: one gateway request
// per paper over a bounded worker pool. A paper whose response cannot be
// parsed gets a degraded fallback record; the failure never escapes the
// paper. Output order always matches input order regardless of completion
// order.
func (e *Executor) ExtractMetadata(ctx context.Context, s Snapshot) (Snapshot, error) {
	systemBlocks := anthropic.BuildCachedSystemBlocks(metadataSystemText)

	// Result slots are disjoint by original index, so goroutines write to a
	// pre-sized slice without locking. Usage is the only shared accumulator.
	records := make([]model.PaperMetadata, len(s.Papers))
	var mu sync.Mutex
	var usage model.TokenUsage

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	for i, paper := range s.Papers {
		g.Go(func() error {
			prompt := fmt.Sprintf(metadataPrompt, paper.Title, paper.Abstract)

			text, u, err := e.gw.generate(gCtx, "extract_metadata", systemBlocks, prompt)
			mu.Lock()
			usage.Add(model.TokenUsage{InputTokens: int(u.InputTokens), OutputTokens: int(u.OutputTokens)})
			mu.Unlock()

			if err != nil {
				// Retries exhausted: contained per paper, degrade and move on.
				zap.L().Warn("metadata: gateway call failed, using degraded record",
					zap.Int("paper_id", i+1),
					zap.Error(err),
				)
				records[i] = model.DegradedMetadata(paper, i)
				return gCtx.Err()
			}

			records[i] = parseMetadata(text, paper, i)
			return nil
		})
	}

	// Tokens spent before cancellation still count toward the run total.
	if err := g.Wait(); err != nil {
		return s.addUsage(usage), err
	}

	zap.L().Info("metadata: extraction complete",
		zap.Int("papers", len(records)),
		zap.Int("fallbacks", countMetadataFallbacks(records)),
	)

	s.Metadata = records
	return s.addUsage(usage).withStep(StepMetadataExtracted), nil
}

// parseMetadata decodes a gateway response into a metadata record, falling
// back to the degraded record on any parse failure. paper_id and
// original_index are assigned here and never touched again.
func parseMetadata(text string, paper model.Paper, index int) model.PaperMetadata {
	var raw map[string]any
	if err := json.Unmarshal([]byte(cleanJSON(text)), &raw); err != nil {
		zap.L().Warn("metadata: failed to parse response JSON",
			zap.Int("paper_id", index+1),
			zap.Error(err),
		)
		return model.DegradedMetadata(paper, index)
	}

	md := model.PaperMetadata{
		PaperID:         index + 1,
		OriginalIndex:   index,
		Title:           orDefault(asString(raw["title"]), paper.Title),
		Authors:         asStringSlice(raw["authors"]),
		Journal:         orDefault(asString(raw["journal"]), model.NotSpecified),
		Year:            orDefault(asString(raw["year"]), model.NotSpecified),
		Keywords:        asStringSlice(raw["keywords"]),
		ResearchDomain:  orDefault(asString(raw["research_domain"]), model.NotSpecified),
		Methodology:     orDefault(asString(raw["methodology"]), model.NotSpecified),
		SampleSize:      orDefault(asString(raw["sample_size"]), model.NotSpecified),
		StudyType:       orDefault(asString(raw["study_type"]), model.NotSpecified),
		MainFindings:    orDefault(asString(raw["main_findings"]), model.NotSpecified),
		Limitations:     orDefault(asString(raw["limitations"]), model.NotSpecified),
		AbstractSummary: orDefault(asString(raw["abstract_summary"]), paper.AbstractSummary(200)),
	}
	return md
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func countMetadataFallbacks(records []model.PaperMetadata) int {
	n := 0
	for _, r := range records {
		if r.Fallback {
			n++
		}
	}
	return n
}
