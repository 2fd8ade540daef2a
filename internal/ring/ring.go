// Package ring implements the fixed-capacity trail buffer.
//
// A Buffer always holds exactly Cap values. It starts pre-filled with a
// default, so there is no empty state: after fewer than Cap pushes the
// oldest ranks still report the default.
package ring

import "fmt"

// Buffer is a circular store indexed by recency rank. Rank 0 is the most
// recently pushed value. Capacity is fixed for the lifetime of the buffer.
type Buffer[T any] struct {
	data []T
	head int
}

// New allocates a buffer of the given capacity with every slot set to def.
// A capacity below 1 is a programming error and panics.
func New[T any](capacity int, def T) *Buffer[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("ring: capacity must be at least 1, got %d", capacity))
	}
	b := &Buffer[T]{data: make([]T, capacity)}
	b.Fill(def)
	return b
}

func (b *Buffer[T]) Cap() int { return len(b.data) }

// Push records item as rank 0, evicting the oldest value.
func (b *Buffer[T]) Push(item T) {
	if b.head == 0 {
		b.head = len(b.data) - 1
	} else {
		b.head--
	}
	b.data[b.head] = item
}

// Get returns the value pushed rank steps ago. Rank must lie in [0, Cap).
func (b *Buffer[T]) Get(rank int) T {
	if rank < 0 || rank >= len(b.data) {
		panic(fmt.Sprintf("ring: rank %d out of range [0, %d)", rank, len(b.data)))
	}
	return b.data[(b.head+rank)%len(b.data)]
}

// Fill overwrites every slot with v and rewinds the head, discarding history.
func (b *Buffer[T]) Fill(v T) {
	for i := range b.data {
		b.data[i] = v
	}
	b.head = 0
}

// AppendTo appends ranks 0..Cap-1 to dst in recency order.
func (b *Buffer[T]) AppendTo(dst []T) []T {
	for r := 0; r < len(b.data); r++ {
		dst = append(dst, b.Get(r))
	}
	return dst
}
