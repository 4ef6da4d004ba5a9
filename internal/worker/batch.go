package worker

import (
	"context"
	"fmt"

	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/metrics"
)

// ProcessEach applies fn to every item and collects the staged results.
//
// fn returns ok == false to skip an item without error. An item whose fn returns
// an error or panics is logged and skipped; the rest of the batch still runs.
func ProcessEach[T, U any](ctx context.Context, job string, items []T, fn func(T) (U, bool, error)) []U {
	log := logger.ForJob(ctx, job)
	staged := make([]U, 0, len(items))

	for i, item := range items {
		out, ok, err := safeApply(fn, item)
		if err != nil {
			metrics.JobItemErrors.WithLabelValues(job).Inc()
			log.Warn(LogMsgJobItemFailed, "index", i, "error", err)
			continue
		}
		if ok {
			staged = append(staged, out)
		}
	}
	return staged
}

func safeApply[T, U any](fn func(T) (U, bool, error), item T) (out U, ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return fn(item)
}
