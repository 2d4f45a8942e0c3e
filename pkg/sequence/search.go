package sequence

import "cmp"

// Match returns a one element view over some element of s equal to key, or
// NotFound(s). When key occurs more than once, which occurrence is returned
// depends on the probe order, not on position.
func Match[E cmp.Ordered](s Adjacent[E], key E) Adjacent[E] {
	return MatchFunc(s, key, cmp.Compare[E])
}

// MatchFunc is like Match but orders elements with compare, which returns
// a negative number when the element sorts before key, zero when they are
// equivalent and a positive number when it sorts after key.
func MatchFunc[E, K any](s Adjacent[E], key K, compare func(E, K) int) Adjacent[E] {
	var ed edit[E]
	seq := s
	for seq.IsValid() {
		mid := seq.Middle()
		switch c := compare(seq.data[mid], key); {
		case c < 0:
			ed.beg(&seq, mid+1)
		case c > 0:
			ed.end(&seq, mid)
		default:
			return s.with(mid, mid+1)
		}
	}
	return NotFound(s)
}

// Lower returns a one element view over the first element of s equal to
// key, or NotFound(s).
func Lower[E cmp.Ordered](s Adjacent[E], key E) Adjacent[E] {
	return LowerFunc(s, key, cmp.Compare[E])
}

// LowerFunc is like Lower but orders elements with compare. See MatchFunc.
func LowerFunc[E, K any](s Adjacent[E], key K, compare func(E, K) int) Adjacent[E] {
	pos := lowerBound(s, key, compare)
	if pos < s.end && compare(s.data[pos], key) == 0 {
		return s.with(pos, pos+1)
	}
	return NotFound(s)
}

// Upper returns a one element view over the last element of s equal to
// key, or NotFound(s).
func Upper[E cmp.Ordered](s Adjacent[E], key E) Adjacent[E] {
	return UpperFunc(s, key, cmp.Compare[E])
}

// UpperFunc is like Upper but orders elements with compare. See MatchFunc.
func UpperFunc[E, K any](s Adjacent[E], key K, compare func(E, K) int) Adjacent[E] {
	pos := upperBound(s, key, compare)
	if pos > s.beg && compare(s.data[pos-1], key) == 0 {
		return s.with(pos-1, pos)
	}
	return NotFound(s)
}

// Equal returns the view over the run of elements of s equal to key, or
// NotFound(s).
func Equal[E cmp.Ordered](s Adjacent[E], key E) Adjacent[E] {
	return EqualFunc(s, key, cmp.Compare[E])
}

// EqualFunc is like Equal but orders elements with compare. See MatchFunc.
func EqualFunc[E, K any](s Adjacent[E], key K, compare func(E, K) int) Adjacent[E] {
	match := MatchFunc(s, key, compare)
	if match.IsEmpty() {
		return NotFound(s)
	}
	// match lies in the left part, so the lower search always succeeds.
	lower := LowerFunc(s.with(s.beg, match.end), key, compare)
	end := match.end
	if upper := UpperFunc(s.with(match.end, s.end), key, compare); upper.IsValid() {
		end = upper.end
	}
	return s.with(lower.beg, end)
}

// LowerBound returns the empty view [p,p) where p is the first position in
// s whose element does not sort before key, or s.End() if there is none.
func LowerBound[E cmp.Ordered](s Adjacent[E], key E) Adjacent[E] {
	return LowerBoundFunc(s, key, cmp.Compare[E])
}

// LowerBoundFunc is like LowerBound but orders elements with compare.
func LowerBoundFunc[E, K any](s Adjacent[E], key K, compare func(E, K) int) Adjacent[E] {
	pos := lowerBound(s, key, compare)
	return s.with(pos, pos)
}

// UpperBound returns the empty view [p,p) where p is the first position in
// s whose element sorts after key, or s.End() if there is none.
func UpperBound[E cmp.Ordered](s Adjacent[E], key E) Adjacent[E] {
	return UpperBoundFunc(s, key, cmp.Compare[E])
}

// UpperBoundFunc is like UpperBound but orders elements with compare.
func UpperBoundFunc[E, K any](s Adjacent[E], key K, compare func(E, K) int) Adjacent[E] {
	pos := upperBound(s, key, compare)
	return s.with(pos, pos)
}

func lowerBound[E, K any](seq Adjacent[E], key K, compare func(E, K) int) int {
	var ed edit[E]
	for seq.IsValid() {
		if mid := seq.Middle(); compare(seq.data[mid], key) < 0 {
			ed.beg(&seq, mid+1)
		} else {
			ed.end(&seq, mid)
		}
	}
	return seq.end
}

func upperBound[E, K any](seq Adjacent[E], key K, compare func(E, K) int) int {
	var ed edit[E]
	// an inverted view would otherwise report its beg
	if seq.IsEmpty() {
		return seq.end
	}
	for seq.IsValid() {
		if mid := seq.Middle(); compare(seq.data[mid], key) > 0 {
			ed.end(&seq, mid)
		} else {
			ed.beg(&seq, mid+1)
		}
	}
	return seq.beg
}
