// Package scheduler runs the periodic lifecycle sweeps. It keeps no state of
// its own: each tick is a full idempotent pass over stored conferences and
// papers, so a missed or failed tick is simply retried on the next one.
package scheduler

import (
	"context"
	"log"
	"time"

	"confportal-backend/internal/lifecycle"
)

type Scheduler struct {
	engine   *lifecycle.Engine
	interval time.Duration
}

func New(engine *lifecycle.Engine, interval time.Duration) *Scheduler {
	return &Scheduler{engine: engine, interval: interval}
}

// Start launches the background sweep loop. One pass runs immediately so a
// freshly booted server never serves statuses older than the last downtime.
func (s *Scheduler) Start() {
	s.runOnce()

	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			s.runOnce()
		}
	}()
}

func (s *Scheduler) runOnce() {
	ctx := context.Background()
	if err := s.engine.RunSweeps(ctx, time.Now()); err != nil {
		log.Printf("lifecycle sweep error: %v", err)
	}
}
