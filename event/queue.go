package event

import (
	"sync"

	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/oerror"
	"github.com/oomph-ac/aimbench/utils"
)

// Queue delays input by a whole number of ticks. Events pushed during a tick are collected into a batch, and each
// batch is delivered exactly once, depth ticks after it was sampled.
//
// Push may be called from any goroutine. Sample, Deliver and SetDepth must be called from the goroutine running the
// simulation.
type Queue struct {
	mu      sync.Mutex
	pending Batch

	depth   int
	batches *utils.CircularQueue[Batch]
}

// NewQueue returns a queue delaying input by depth ticks.
func NewQueue(depth int) (*Queue, error) {
	if depth < 0 {
		return nil, oerror.New(game.ErrorNegativeFrameDelay, depth)
	}
	return &Queue{
		depth:   depth,
		batches: utils.NewCircularQueue[Batch](depth + 1),
	}, nil
}

// Push appends an event to the batch of the current tick.
func (q *Queue) Push(ev InputEvent) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

// Sample closes the batch of the current tick and appends it to the delay FIFO, even if it is empty.
func (q *Queue) Sample() {
	q.mu.Lock()
	b := q.pending
	q.pending = nil
	q.mu.Unlock()

	// A full FIFO drops its oldest batch here, the same trim Deliver would apply.
	_ = q.batches.Append(b)
}

// Deliver returns the batch sampled depth ticks ago. Until the FIFO holds depth+1 batches an empty batch is
// returned, so nothing is delivered early.
func (q *Queue) Deliver() Batch {
	for q.batches.Len() > q.depth+1 {
		q.batches.Pop()
	}
	if q.batches.Len() < q.depth+1 {
		return nil
	}
	b, _ := q.batches.Pop()
	return b
}

// SetDepth changes the delay. Reducing it drops the oldest batches immediately, so they are never delivered.
func (q *Queue) SetDepth(depth int) error {
	if depth < 0 {
		return oerror.New(game.ErrorNegativeFrameDelay, depth)
	}
	q.depth = depth
	q.batches.Resize(depth + 1)
	return nil
}

// Depth returns the current delay in ticks.
func (q *Queue) Depth() int {
	return q.depth
}

// Len returns the number of sampled batches waiting for delivery.
func (q *Queue) Len() int {
	return q.batches.Len()
}

// Clear drops every pending event and batch.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()
	q.batches.Clear()
}
