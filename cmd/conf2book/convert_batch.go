package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	conf2book "github.com/okrasa/go-conf2book"
)

// MaxWorkers caps the conversion fan-out.
const MaxWorkers = 8

// convertBatch converts documents in parallel with a bounded worker
// set. All workers share one converter. Workers only convert; name
// allocation and writes happen afterward so collision numbering stays
// deterministic.
func convertBatch(ctx context.Context, conv DocumentConverter, docs []DocumentToConvert, emitMarkdown bool, workers int) []ConversionResult {
	if len(docs) == 0 {
		return nil
	}
	if workers > len(docs) {
		workers = len(docs)
	}

	results := make([]ConversionResult, len(docs))
	jobs := make(chan int, len(docs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: docs[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertDocument(ctx, conv, docs[idx], emitMarkdown)
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertDocument reads and converts a single page.
func convertDocument(ctx context.Context, conv DocumentConverter, doc DocumentToConvert, emitMarkdown bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: doc.InputPath}

	content, err := os.ReadFile(doc.InputPath) // #nosec G304 -- path comes from directory discovery
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadDocument, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, conf2book.Input{
		HTML:         string(content),
		SourceDir:    filepath.Dir(doc.InputPath),
		Name:         filepath.Base(doc.InputPath),
		EmitMarkdown: emitMarkdown,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Result = res
	result.Duration = time.Since(start)
	return result
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > GOMAXPROCS-based default.
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// validateWorkers checks the --workers flag value.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
