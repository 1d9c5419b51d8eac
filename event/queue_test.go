package event

import (
	"testing"
)

// runTicks pushes one tagged event per tick and records the tick each tag was delivered on.
func runTicks(t *testing.T, q *Queue, from, to int, delivered map[int][]int) {
	t.Helper()
	for tick := from; tick < to; tick++ {
		q.Push(DesiredCameraRotation{Yaw: float32(tick)})
		q.Sample()
		for _, ev := range q.Deliver() {
			tag := int(ev.(DesiredCameraRotation).Yaw)
			delivered[tag] = append(delivered[tag], tick)
		}
	}
}

func TestQueueDeliversAfterDepth(t *testing.T) {
	for depth := 0; depth <= 6; depth++ {
		q, err := NewQueue(depth)
		if err != nil {
			t.Fatalf("depth %d: unexpected error: %v", depth, err)
		}

		delivered := make(map[int][]int)
		runTicks(t, q, 0, 50, delivered)

		for tag := 0; tag < 50-depth; tag++ {
			ticks := delivered[tag]
			if len(ticks) != 1 {
				t.Fatalf("depth %d: event sampled at tick %d delivered %d times", depth, tag, len(ticks))
			}
			if ticks[0] != tag+depth {
				t.Fatalf("depth %d: event sampled at tick %d delivered at tick %d", depth, tag, ticks[0])
			}
		}
		if q.Len() > depth+1 {
			t.Fatalf("depth %d: queue holds %d batches", depth, q.Len())
		}
	}
}

func TestQueueStartupDeliversEmptyBatches(t *testing.T) {
	q, _ := NewQueue(3)
	for tick := 0; tick < 3; tick++ {
		q.Push(Fire{})
		q.Sample()
		if b := q.Deliver(); len(b) != 0 {
			t.Fatalf("expected empty batch at tick %d, got %v", tick, b)
		}
	}
	q.Sample()
	if b := q.Deliver(); len(b) != 1 {
		t.Fatalf("expected the first batch at tick 3, got %v", b)
	}
}

func TestQueuePreservesOrderWithinBatch(t *testing.T) {
	q, _ := NewQueue(0)
	q.Push(Fire{})
	q.Push(Jump{})
	q.Push(FireEnd{})
	q.Sample()

	b := q.Deliver()
	if len(b) != 3 {
		t.Fatalf("expected 3 events, got %d", len(b))
	}
	want := []byte{EventIDFire, EventIDJump, EventIDFireEnd}
	for i, ev := range b {
		if ev.ID() != want[i] {
			t.Fatalf("event %d: expected id %d, got %d", i, want[i], ev.ID())
		}
	}
}

func TestQueueDepthReduction(t *testing.T) {
	q, _ := NewQueue(8)
	delivered := make(map[int][]int)
	runTicks(t, q, 0, 20, delivered)

	if err := q.SetDepth(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Len() > 3 {
		t.Fatalf("expected queue trimmed to 3 batches, got %d", q.Len())
	}
	runTicks(t, q, 20, 40, delivered)

	for tag, ticks := range delivered {
		if len(ticks) != 1 {
			t.Fatalf("event sampled at tick %d delivered %d times", tag, len(ticks))
		}
		if tag >= 20 && ticks[0] != tag+2 {
			t.Fatalf("event sampled at tick %d after reduction delivered at tick %d", tag, ticks[0])
		}
		if ticks[0] < tag+2 {
			t.Fatalf("event sampled at tick %d delivered early at tick %d", tag, ticks[0])
		}
	}
}

func TestQueueDepthIncreaseKeepsEvents(t *testing.T) {
	q, _ := NewQueue(1)
	delivered := make(map[int][]int)
	runTicks(t, q, 0, 10, delivered)
	if err := q.SetDepth(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runTicks(t, q, 10, 30, delivered)

	for tag := 0; tag < 26; tag++ {
		if len(delivered[tag]) != 1 {
			t.Fatalf("event sampled at tick %d delivered %d times", tag, len(delivered[tag]))
		}
	}
}

func TestQueueRejectsNegativeDepth(t *testing.T) {
	if _, err := NewQueue(-1); err == nil {
		t.Fatalf("expected an error for negative depth")
	}
	q, _ := NewQueue(2)
	if err := q.SetDepth(-3); err == nil {
		t.Fatalf("expected an error for negative depth")
	}
	if q.Depth() != 2 {
		t.Fatalf("expected depth to stay 2, got %d", q.Depth())
	}
}
