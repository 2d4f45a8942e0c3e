package sequence

// edit is the only way to move the boundaries of an Adjacent view. It is
// unexported so that narrowing happens inside the search loops of this
// package and nowhere else.
type edit[T any] struct{}

func (edit[T]) beg(s *Adjacent[T], pos int) { s.beg = pos }

func (edit[T]) end(s *Adjacent[T], pos int) { s.end = pos }
