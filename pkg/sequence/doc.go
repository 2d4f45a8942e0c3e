/*
Package sequence implements views over contiguous ranges of elements and the
binary-search algorithms that operate on them.

An Adjacent view denotes the half-open span [beg, end) of a backing slice.
Views are small values: they are passed and returned by copy, never own the
elements they cover and never write to them. Several views may alias the same
slice.

The boundaries of a view can only be moved from inside this package. The
search algorithms narrow a private copy of the view they are given and return
a fresh view as their result, so the caller's view is never changed:

	s := sequence.Of([]int{1, 3, 3, 3, 7, 9})
	r := sequence.Equal(s, 3) // [1,4)

A search that finds nothing returns the NotFound sentinel, the empty view
[end, end) anchored at the end of the view that was searched. Use IsEmpty on
the result to tell the cases apart. LowerBound and UpperBound return the
insertion point of a key as an empty view [p, p).

All algorithms require the view to be sorted in ascending order under the
ordering in use. This is assumed, not checked. Calling Middle on an empty view
or passing positions outside the backing slice panics.
*/
package sequence
