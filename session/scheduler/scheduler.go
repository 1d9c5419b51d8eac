package scheduler

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/aimbench/game"
	"github.com/sirupsen/logrus"
)

// TickFunc advances the simulation to now. If render is true the tick must also render a frame.
type TickFunc func(now time.Time, render bool)

// Scheduler drives ticks until its context is cancelled. Ticks are never run concurrently: the next tick is only
// scheduled once the previous one returned.
type Scheduler interface {
	Run(ctx context.Context, tick TickFunc) error
}

// runTick runs a single tick, recovering and reporting a panic so that the loop keeps going.
func runTick(log *logrus.Logger, tick TickFunc, now time.Time, render bool) {
	defer func() {
		if v := recover(); v != nil {
			sentry.CurrentHub().Recover(v)
			log.Errorf(game.ErrorSchedulerTickPanic, v)
		}
	}()
	tick(now, render)
}
