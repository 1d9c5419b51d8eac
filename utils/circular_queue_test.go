package utils

import (
	"slices"
	"testing"
)

func TestCircularQueueOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	for i := 1; i <= 5; i++ {
		if err := q.Append(i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !q.Full() || q.Len() != 3 || q.Cap() != 3 {
		t.Fatalf("expected a full queue of 3, got len=%d cap=%d", q.Len(), q.Cap())
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{3, 4, 5}) {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
	if v, err := q.Get(0); err != nil || v != 3 {
		t.Fatalf("expected oldest element 3, got %d (%v)", v, err)
	}
	if _, err := q.Get(3); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestCircularQueuePop(t *testing.T) {
	q := NewCircularQueue[string](2)
	_ = q.Append("a")
	_ = q.Append("b")
	if v, ok := q.Pop(); !ok || v != "a" {
		t.Fatalf("expected a, got %q", v)
	}
	_ = q.Append("c")
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []string{"b", "c"}) {
		t.Fatalf("expected [b c], got %v", got)
	}
	q.Pop()
	q.Pop()
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected pop on an empty queue to fail")
	}
}

func TestCircularQueueResize(t *testing.T) {
	q := NewCircularQueue[int](4)
	for i := 1; i <= 6; i++ {
		_ = q.Append(i)
	}
	dropped := q.Resize(2)
	if !slices.Equal(dropped, []int{3, 4}) {
		t.Fatalf("expected oldest elements [3 4] to be dropped, got %v", dropped)
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{5, 6}) {
		t.Fatalf("expected [5 6], got %v", got)
	}

	q.Resize(4)
	_ = q.Append(7)
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{5, 6, 7}) || q.Full() {
		t.Fatalf("expected [5 6 7] after growing, got %v", got)
	}

	q.Clear()
	if q.Len() != 0 || q.Cap() != 4 {
		t.Fatalf("expected an empty queue keeping its capacity")
	}
}

func TestCircularQueueZeroCapacity(t *testing.T) {
	q := NewCircularQueue[int](0)
	if err := q.Append(1); err == nil {
		t.Fatalf("expected append on a zero-capacity queue to fail")
	}
}
