// Package channel provides the bounded single-direction transport used
// between the render and engine goroutines.
//
// A Channel has a fixed capacity. Produce blocks while the buffer is full
// and Consume blocks while it is empty; values come out in the order they
// went in. Each Channel is meant to have exactly one producing goroutine
// and one consuming goroutine. There is no timeout and no cancellation:
// the two sides agree on when to stop through the values they exchange.
package channel

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1

// Channel is a bounded blocking FIFO of values of type T.
type Channel[T any] struct {
	buf chan T
}

// New creates a channel holding at most capacity values.
func New[T any](capacity int) *Channel[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Channel[T]{buf: make(chan T, capacity)}
}

// Produce appends v, blocking while the channel is full.
func (c *Channel[T]) Produce(v T) {
	c.buf <- v
}

// Consume removes and returns the oldest value, blocking while the
// channel is empty.
func (c *Channel[T]) Consume() T {
	return <-c.buf
}

// Len returns the number of values currently buffered.
func (c *Channel[T]) Len() int {
	return len(c.buf)
}

// Cap returns the fixed capacity.
func (c *Channel[T]) Cap() int {
	return cap(c.buf)
}
