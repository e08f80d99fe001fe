package world

import (
	"context"
	"time"

	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// InputSource supplies the held-key snapshot for the next tick
type InputSource func() vehicle.Input

// FrameFunc receives the world state after each tick. Returning false stops
// the loop.
type FrameFunc func(Snapshot) bool

// Run steps the world at the configured tick rate until ctx is cancelled or
// frame returns false. Delta time comes from the wall clock.
func (w *World) Run(ctx context.Context, input InputSource, frame FrameFunc) error {
	rate := w.cfg.Physics.TickRate
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			w.Step(dt, input())
			if frame != nil && !frame(w.Snapshot()) {
				return nil
			}
		}
	}
}

// RunTicks steps the world n times with a fixed delta, as fast as possible.
// It is the headless mode used for smoke runs and tests.
func (w *World) RunTicks(n int, input InputSource, frame FrameFunc) {
	dt := 1 / float64(w.cfg.Physics.TickRate)
	for i := 0; i < n; i++ {
		w.Step(dt, input())
		if frame != nil && !frame(w.Snapshot()) {
			return
		}
	}
}
