package worker

import (
	"context"
	"errors"
)

// ErrTaskPanicked wraps a panic recovered from a task or item function
var ErrTaskPanicked = errors.New("task panicked")

// TickResult summarizes the work done by one tick
type TickResult struct {
	// ItemsProcessed is the number of entities whose update was staged
	ItemsProcessed int
	// UnitsChanged is the total quantity moved by those updates
	UnitsChanged int64
}

// Task is one unit of periodic work
type Task interface {
	Name() string
	Run(ctx context.Context) (TickResult, error)
}
