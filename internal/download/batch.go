// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"context"
	"fmt"
	"sync"

	"github.com/DBDXSS/ScholarDock/pkg/types"
)

// DefaultConcurrency is the batch concurrency cap when the config leaves
// it unset. Publishers tolerate a handful of parallel requests; more tends
// to trip rate limiting.
const DefaultConcurrency = 3

// BatchResult aggregates per-article outcomes for one batch run. Every
// input article appears in exactly one of the two slices; their order
// reflects completion, not input.
type BatchResult struct {
	Total      int
	Successful []Outcome
	Failed     []Outcome
}

// HasFailures reports whether any article failed.
func (r BatchResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// DownloadBatch runs the retrieval state machine over articles with at
// most cfg.Concurrency retrievals in flight. Each article's processing is
// independent: a fault in one task is captured as that task's failed
// outcome and never disturbs the rest or the aggregate counts.
func (f *Fetcher) DownloadBatch(ctx context.Context, articles []types.Article, dir string) BatchResult {
	limit := f.cfg.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	outcomes := make(chan Outcome)
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for _, article := range articles {
		wg.Add(1)
		go func(a types.Article) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes <- f.downloadRecovering(ctx, a, dir)
		}(article)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := BatchResult{Total: len(articles)}
	for o := range outcomes {
		if o.Success {
			result.Successful = append(result.Successful, o)
		} else {
			result.Failed = append(result.Failed, o)
		}
	}

	fmt.Fprintf(f.w, "\nBatch summary: %d downloaded, %d failed (total: %d)\n",
		len(result.Successful), len(result.Failed), result.Total)
	return result
}

// downloadRecovering converts a panic inside one article's retrieval into
// a failed outcome so the one-outcome-per-article invariant holds.
func (f *Fetcher) downloadRecovering(ctx context.Context, a types.Article, dir string) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(f.w, "failed:  %s (fault: %v)\n", a.Title, r)
			o = Outcome{Article: a, Reason: FailInternal}
		}
	}()
	return f.DownloadArticle(ctx, a, dir)
}
