// Package batch runs a per-item function over a slice, sequentially or on
// a bounded pool of goroutines.
//
// A failing or panicking item never stops the batch: its error is recorded
// in its Result and the remaining items still run. Only cancellation of the
// context ends a batch early.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	beratools "github.com/appliedgrg/bera-tools"
)

// ErrPanic wraps a value recovered from a panicking item.
var ErrPanic = errors.New("batch: item panicked")

// Mode selects how items are scheduled.
type Mode int

const (
	// ModeSequential runs items one after another on the calling goroutine.
	ModeSequential Mode = iota
	// ModeConcurrent runs items on up to workers goroutines.
	ModeConcurrent
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeConcurrent {
		return "concurrent"
	}
	return "sequential"
}

// Result is the outcome of one item. Index is the item's position in the
// input slice.
type Result[O any] struct {
	Index int
	Value O
	Err   error
}

// Execute applies fn to every item and returns one Result per item that
// ran, in completion order. label names the batch in log records. workers
// ≤ 0 selects runtime.NumCPU(). The returned error is non-nil only when ctx
// was cancelled; results gathered until then are still returned.
func Execute[I, O any](ctx context.Context, fn func(context.Context, I) (O, error),
	items []I, label string, workers int, mode Mode) ([]Result[O], error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := beratools.Logger().With("batch", label, "mode", mode.String())
	start := time.Now()

	var (
		mu      sync.Mutex
		results = make([]Result[O], 0, len(items))
		failed  int
	)
	record := func(r Result[O]) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
		if r.Err != nil {
			failed++
			log.Warn("batch: item failed", "index", r.Index, "err", r.Err)
		}
	}

	var err error
	if mode == ModeSequential || workers == 1 {
		for i, it := range items {
			if err = ctx.Err(); err != nil {
				break
			}
			record(run(ctx, fn, i, it))
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, it := range items {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				record(run(gctx, fn, i, it))
				return nil
			})
		}
		err = g.Wait()
		if err == nil {
			err = ctx.Err()
		}
	}

	log.Info("batch: done", "items", len(items), "completed", len(results), "failed", failed,
		"elapsed", time.Since(start))
	if err != nil {
		return results, fmt.Errorf("batch %s: %w", label, err)
	}
	return results, nil
}

func run[I, O any](ctx context.Context, fn func(context.Context, I) (O, error), i int, it I) (res Result[O]) {
	res.Index = i
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	res.Value, res.Err = fn(ctx, it)
	return res
}
