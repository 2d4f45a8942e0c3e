package idxtable

import "github.com/henderiw/sequence/pkg/sequence"

// Iterator walks a snapshot of claimed ids in ascending order.
type Iterator[T any] struct {
	ids     sequence.Adjacent[int64]
	values  map[int64]T
	current int
}

func newIterator[T any](ids sequence.Adjacent[int64], values map[int64]T) *Iterator[T] {
	return &Iterator[T]{ids: ids, values: values, current: ids.Beg() - 1}
}

func (r *Iterator[T]) Value() T {
	return r.values[r.ID()]
}

func (r *Iterator[T]) ID() int64 {
	return r.ids.At(r.current)
}

func (r *Iterator[T]) Entry() Entry[T] {
	return NewEntry(r.ID(), r.Value())
}

func (r *Iterator[T]) Next() bool {
	r.current++
	return r.current < r.ids.End()
}

// IsConsecutive reports whether the current id directly follows the
// previous one.
func (r *Iterator[T]) IsConsecutive() bool {
	if r.current <= r.ids.Beg() {
		return false
	}
	return r.ids.At(r.current-1) == r.ids.At(r.current)-1
}
