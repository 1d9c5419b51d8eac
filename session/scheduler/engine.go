package scheduler

import (
	"context"
	"time"

	"github.com/oomph-ac/aimbench/internal"
	"github.com/sirupsen/logrus"
)

type frameRequest struct {
	now  time.Time
	done chan struct{}
}

// Engine runs one rendering tick per frame callback of an external engine, typically once per vsync.
type Engine struct {
	frames  chan frameRequest
	stopped chan struct{}

	log *logrus.Logger
}

// NewEngine returns an engine-paced scheduler. Frame callbacks are delivered through Frame.
func NewEngine(log *logrus.Logger) *Engine {
	return &Engine{
		frames:  make(chan frameRequest),
		stopped: make(chan struct{}),
		log:     internal.Logger(log),
	}
}

// Frame hands a frame callback to the running scheduler and blocks until its tick has completed, so exactly one
// callback is in flight at a time. It returns false if the scheduler has stopped.
func (e *Engine) Frame(now time.Time) bool {
	req := frameRequest{now: now, done: make(chan struct{})}
	select {
	case e.frames <- req:
	case <-e.stopped:
		return false
	}
	<-req.done
	return true
}

// Run runs a rendering tick for every frame callback until ctx is cancelled. An Engine can only be run once.
func (e *Engine) Run(ctx context.Context, tick TickFunc) error {
	defer close(e.stopped)
	e.log.Debug("engine-paced scheduler started")
	for {
		select {
		case <-ctx.Done():
			e.log.Debug("engine-paced scheduler stopped")
			return ctx.Err()
		case req := <-e.frames:
			runTick(e.log, tick, req.now, true)
			close(req.done)
		}
	}
}
