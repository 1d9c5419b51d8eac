package scheduler

import (
	"context"
	"time"

	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/internal"
	"github.com/oomph-ac/aimbench/oerror"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Timer reschedules itself after a minimal polling interval. The simulation advances on every tick, but a tick only
// renders once most of the target frame interval has passed since the last rendered tick.
type Timer struct {
	frameRate *atomic.Float64
	poll      time.Duration
	clock     func() time.Time

	lastRender time.Time

	log *logrus.Logger
}

// NewTimer returns a timer-paced scheduler rendering at most frameRate frames per second.
func NewTimer(frameRate float64, log *logrus.Logger) (*Timer, error) {
	if frameRate <= 0 {
		return nil, oerror.New(game.ErrorInvalidFrameRate, frameRate)
	}
	return &Timer{
		frameRate: atomic.NewFloat64(frameRate),
		poll:      game.PollInterval,
		clock:     time.Now,
		log:       internal.Logger(log),
	}, nil
}

// SetFrameRate changes the target frame rate. It may be called from any goroutine.
func (t *Timer) SetFrameRate(frameRate float64) error {
	if frameRate <= 0 {
		return oerror.New(game.ErrorInvalidFrameRate, frameRate)
	}
	t.frameRate.Store(frameRate)
	return nil
}

// FrameRate returns the target frame rate.
func (t *Timer) FrameRate() float64 {
	return t.frameRate.Load()
}

// Run runs ticks until ctx is cancelled.
func (t *Timer) Run(ctx context.Context, tick TickFunc) error {
	t.log.Debugf("timer-paced scheduler started at %.1f Hz", t.FrameRate())
	next := time.NewTimer(0)
	defer next.Stop()
	for {
		select {
		case <-ctx.Done():
			t.log.Debug("timer-paced scheduler stopped")
			return ctx.Err()
		case <-next.C:
		}
		now := t.clock()
		runTick(t.log, tick, now, t.shouldRender(now))
		next.Reset(t.poll)
	}
}

// shouldRender returns true and records the render time if at least 95% of the frame interval has passed since the
// last rendered tick.
func (t *Timer) shouldRender(now time.Time) bool {
	interval := float64(time.Second) / t.frameRate.Load()
	if !t.lastRender.IsZero() && float64(now.Sub(t.lastRender)) < game.RenderIntervalSlack*interval {
		return false
	}
	t.lastRender = now
	return true
}
