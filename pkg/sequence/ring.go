package sequence

// Ring is a fixed capacity double ended queue backed by a circular array.
// The zero value has no capacity; use NewRing.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring[T]{items: make([]T, capacity)}
}

func (r *Ring[T]) Len() int { return r.size }

func (r *Ring[T]) Cap() int { return len(r.items) }

func (r *Ring[T]) IsEmpty() bool { return r.size == 0 }

func (r *Ring[T]) IsFull() bool { return r.size == len(r.items) }

// PushBack appends value and reports false when the ring is full.
func (r *Ring[T]) PushBack(value T) bool {
	if r.IsFull() {
		return false
	}
	r.items[r.index(r.size)] = value
	r.size++
	return true
}

func (r *Ring[T]) PopFront() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	value := r.items[r.head]
	r.items[r.head] = zero
	r.head = r.index(1)
	r.size--
	return value, true
}

func (r *Ring[T]) PopBack() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	i := r.index(r.size - 1)
	value := r.items[i]
	r.items[i] = zero
	r.size--
	return value, true
}

func (r *Ring[T]) Front() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.items[r.head], true
}

func (r *Ring[T]) Back() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.items[r.index(r.size-1)], true
}

func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head, r.size = 0, 0
}

// Values copies the queued elements front to back.
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)
	for i := range out {
		out[i] = r.items[r.index(i)]
	}
	return out
}

func (r *Ring[T]) index(offset int) int {
	return (r.head + offset) % len(r.items)
}
