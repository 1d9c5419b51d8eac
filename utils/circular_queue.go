package utils

import (
	"iter"

	"github.com/oomph-ac/aimbench/oerror"
)

// CircularQueue is a bounded FIFO. Once full, appending drops the oldest element.
type CircularQueue[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &CircularQueue[T]{items: make([]T, capacity)}
}

// Get returns the element at logical position index (0 = oldest), or an error if out of range.
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, oerror.New("circularQueue: get %d out of range [0, %d)", index, q.size)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of items currently held.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Full returns true if the next Append will drop the oldest element.
func (q *CircularQueue[T]) Full() bool {
	return q.size == len(q.items)
}

// Pop removes and returns the oldest element. The boolean ok is false if the
// queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Append appends an item or returns an error if the queue has zero capacity.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return oerror.New("circularQueue: append on zero-capacity queue")
	}

	q.items[q.tail] = item
	if q.size == len(q.items) {
		// Buffer is full, the oldest element at head was just overwritten.
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.size++
	}
	q.tail = (q.tail + 1) % len(q.items)
	return nil
}

// Resize changes the capacity of the queue. If the queue holds more items than the new capacity, the oldest items are
// dropped and returned in FIFO order.
func (q *CircularQueue[T]) Resize(capacity int) (dropped []T) {
	if capacity < 0 {
		capacity = 0
	}
	for q.size > capacity {
		item, _ := q.Pop()
		dropped = append(dropped, item)
	}

	items := make([]T, capacity)
	for index := range q.size {
		items[index] = q.items[(q.head+index)%len(q.items)]
	}
	q.items = items
	q.head = 0
	q.tail = 0
	if capacity > 0 {
		q.tail = q.size % capacity
	}
	return dropped
}

// Clear removes every item from the queue, keeping its capacity.
func (q *CircularQueue[T]) Clear() {
	clear(q.items)
	q.head, q.tail, q.size = 0, 0, 0
}
