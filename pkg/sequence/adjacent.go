package sequence

import (
	"fmt"
	"iter"
)

// Adjacent is a view over the half-open span [beg, end) of a slice.
//
// The zero value is the empty view [0,0) over a nil slice.
type Adjacent[T any] struct {
	data     []T
	beg, end int
}

// New returns the view [beg, end) over data. An inverted pair (beg > end)
// denotes an empty view. New panics if either boundary falls outside
// [0, len(data)].
func New[T any](data []T, beg, end int) Adjacent[T] {
	if beg < 0 || beg > len(data) || end < 0 || end > len(data) {
		panic(fmt.Sprintf("sequence: bounds [%d,%d) out of range for length %d", beg, end, len(data)))
	}
	return Adjacent[T]{data: data, beg: beg, end: end}
}

// Of returns a view over all of data.
func Of[T any](data []T) Adjacent[T] {
	return Adjacent[T]{data: data, beg: 0, end: len(data)}
}

// Category reports CategoryAdjacent.
func (s Adjacent[T]) Category() Category { return CategoryAdjacent }

// Beg returns the first position of s.
func (s Adjacent[T]) Beg() int { return s.beg }

// End returns the position one past the last element of s.
func (s Adjacent[T]) End() int { return s.end }

// Bounds returns both boundaries of s.
func (s Adjacent[T]) Bounds() (beg, end int) { return s.beg, s.end }

// Count returns end-beg, which is negative for an inverted view.
func (s Adjacent[T]) Count() int { return s.end - s.beg }

// Len returns the number of elements covered by s.
func (s Adjacent[T]) Len() int { return max(s.Count(), 0) }

// IsValid reports whether s covers at least one element.
func (s Adjacent[T]) IsValid() bool { return s.beg < s.end }

// IsEmpty reports whether s covers no element.
func (s Adjacent[T]) IsEmpty() bool { return s.Count() <= 0 }

// Middle returns the position halfway through s, rounding down.
// s must be valid.
func (s Adjacent[T]) Middle() int {
	if !s.IsValid() {
		panic(fmt.Sprintf("sequence: middle of empty view %s", s))
	}
	return s.beg + int(uint(s.Count())>>1)
}

// At returns the element at the absolute position pos, which must lie
// within s.
func (s Adjacent[T]) At(pos int) T {
	if pos < s.beg || pos >= s.end {
		panic(fmt.Sprintf("sequence: position %d outside view %s", pos, s))
	}
	return s.data[pos]
}

// Slice returns the elements covered by s. The result shares memory with
// the backing slice; its capacity is clipped so appending to it never
// writes past the view.
func (s Adjacent[T]) Slice() []T {
	if s.IsEmpty() {
		return nil
	}
	return s.data[s.beg:s.end:s.end]
}

// All yields the position and value of every element of s in order.
func (s Adjacent[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for pos := s.beg; pos < s.end; pos++ {
			if !yield(pos, s.data[pos]) {
				return
			}
		}
	}
}

func (s Adjacent[T]) String() string {
	return fmt.Sprintf("[%d,%d)", s.beg, s.end)
}

// with returns a view over the same slice with new boundaries.
func (s Adjacent[T]) with(beg, end int) Adjacent[T] {
	return Adjacent[T]{data: s.data, beg: beg, end: end}
}

// NotFound returns the empty view anchored at the end of s, the result of
// every search that finds nothing.
func NotFound[T any](s Adjacent[T]) Adjacent[T] {
	return s.with(s.end, s.end)
}
