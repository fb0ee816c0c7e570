// Package lifecycle implements the conference and paper state machines:
// time-driven conference status transitions, the paper submission and
// deadline rules, and the mapping from review recommendations to paper
// decisions. All operations are stateless between calls and idempotent where
// they sweep, so the scheduler and request handlers can invoke them
// concurrently without coordination.
package lifecycle

import (
	"context"
	"time"
)

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// RunSweeps executes the three time-driven reconciliation passes in order.
// The first failure aborts the run; the next invocation picks up whatever
// was left, since every pass is a predicate over stored state rather than a
// delta.
func (e *Engine) RunSweeps(ctx context.Context, now time.Time) error {
	if _, err := e.AdvanceConferences(ctx, now); err != nil {
		return err
	}
	if _, err := e.SweepDeadlines(ctx, now); err != nil {
		return err
	}
	if _, err := e.EnableResubmissions(ctx); err != nil {
		return err
	}
	return nil
}
