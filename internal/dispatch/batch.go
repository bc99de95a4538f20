package dispatch

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// BatchItem names one code fragment inside a batch analysis run.
type BatchItem struct {
	Name       string
	Code       string
	Technology string
	// Category forces routing when set; otherwise the technology decides.
	Category string
}

// BatchResult pairs a fragment with its analysis. Err is set per item so
// one unroutable fragment never sinks the rest of the batch.
type BatchResult struct {
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Analysis *engine.CodeAnalysis `json:"analysis,omitempty"`
	Err      error                `json:"-"`
}

// BatchAnalyzer fans a batch of fragments across a fixed-size worker
// pool. Results come back in input order regardless of which worker
// finished first.
type BatchAnalyzer struct {
	dispatcher *Dispatcher
	workers    int
	logger     *slog.Logger
}

// NewBatchAnalyzer sizes the pool to the CPU count when workers is
// non-positive.
func NewBatchAnalyzer(d *Dispatcher, workers int, logger *slog.Logger) *BatchAnalyzer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchAnalyzer{
		dispatcher: d,
		workers:    workers,
		logger:     logger.With("component", "batch_analyzer"),
	}
}

// Run analyzes every item and returns one result per item, in order.
// Small batches skip the pool; the goroutine overhead costs more than it
// saves below a handful of fragments.
func (b *BatchAnalyzer) Run(ctx context.Context, items []BatchItem, context7 *engine.Context7Data) []BatchResult {
	if len(items) == 0 {
		return nil
	}
	if len(items) <= 2 {
		return b.runSequential(ctx, items, context7)
	}
	return b.runConcurrent(ctx, items, context7)
}

func (b *BatchAnalyzer) runSequential(ctx context.Context, items []BatchItem, context7 *engine.Context7Data) []BatchResult {
	results := make([]BatchResult, len(items))
	for i, item := range items {
		results[i] = b.analyzeOne(ctx, item, context7)
	}
	return results
}

func (b *BatchAnalyzer) runConcurrent(ctx context.Context, items []BatchItem, context7 *engine.Context7Data) []BatchResult {
	results := make([]BatchResult, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := b.workers
	if workers > len(items) {
		workers = len(items)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = b.analyzeOne(ctx, items[idx], context7)
			}
		}()
	}

	for i := range items {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Mark everything not yet submitted as cancelled.
			results[i] = BatchResult{Name: items[i].Name, Err: ctx.Err()}
			for j := i + 1; j < len(items); j++ {
				results[j] = BatchResult{Name: items[j].Name, Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	b.logger.Debug("batch analysis completed", "items", len(items), "workers", workers)
	return results
}

func (b *BatchAnalyzer) analyzeOne(ctx context.Context, item BatchItem, context7 *engine.Context7Data) BatchResult {
	category, err := b.dispatcher.ResolveCategory(item.Category, item.Technology)
	if err != nil {
		return BatchResult{Name: item.Name, Err: err}
	}
	analysis, err := b.dispatcher.AnalyzeCode(ctx, category, item.Code, item.Technology, context7)
	if err != nil {
		return BatchResult{Name: item.Name, Category: category, Err: err}
	}
	return BatchResult{Name: item.Name, Category: category, Analysis: analysis}
}
