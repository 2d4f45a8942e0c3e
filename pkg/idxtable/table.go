package idxtable

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/henderiw/sequence/pkg/sequence"
)

type Table[T any] interface {
	Get(id int64) (T, error)
	Claim(id int64, d T) error
	ClaimDynamic(d T) (int64, error)
	ClaimRange(start, size int64, d T) error
	ClaimSize(size int64, d T) ([]int64, error)
	Release(id int64) error
	Update(id int64, d T) error

	Iterate() *Iterator[T]
	IterateFree() *Iterator[T]
	IterateRange(from, to int64) *Iterator[T]

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	FindFreeRange(start, size int64) ([]int64, error)
	FindFreeSize(size int64) ([]int64, error)

	GetAll() map[int64]T
	GetRange(from, to int64) map[int64]T
}

type ValidationFn func(id int64) error

// NewTable returns a table for the ids [0,s). initEntries are claimed
// without running v; entries that do not fit are skipped and reported in
// the returned error.
func NewTable[T any](s int64, initEntries map[int64]T, v ValidationFn) (Table[T], error) {
	r := &table[T]{
		m:          new(sync.RWMutex),
		table:      map[int64]T{},
		size:       s,
		validateFn: v,
	}

	var errm error
	for id, d := range initEntries {
		if err := r.add(id, d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[T any] struct {
	m     *sync.RWMutex
	table map[int64]T
	// claimed ids in ascending order
	keys       []int64
	size       int64
	validateFn ValidationFn
}

func (r *table[T]) ids() sequence.Adjacent[int64] {
	return sequence.Of(r.keys)
}

func (r *table[T]) validate(id int64, init bool) error {
	if id < 0 || id > r.size-1 {
		return errors.Wrapf(ErrOutOfRange, "id %d outside of allowed entries 0-%d", id, r.size-1)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T]) Get(id int64) (T, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var d T

	if err := r.validate(id, false); err != nil {
		return d, err
	}

	d, ok := r.table[id]
	if !ok {
		return d, errors.Wrapf(ErrNotFound, "no match found for: %d", id)
	}
	return d, nil
}

func (r *table[T]) Claim(id int64, d T) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(id, d, false)
}

func (r *table[T]) ClaimDynamic(d T) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return 0, err
	}
	if err := r.add(id, d, false); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *table[T]) ClaimRange(start, size int64, d T) error {
	r.m.Lock()
	defer r.m.Unlock()

	ids, err := r.findFreeRange(start, size)
	if err != nil {
		return err
	}
	return r.addAll(ids, d)
}

func (r *table[T]) ClaimSize(size int64, d T) ([]int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	ids, err := r.findFreeSize(size)
	if err != nil {
		return nil, err
	}
	if err := r.addAll(ids, d); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *table[T]) Release(id int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

func (r *table[T]) Update(id int64, d T) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(id, d)
}

func (r *table[T]) Iterate() *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.snapshot(r.ids())
}

// IterateFree iterates over the ids that are not claimed. Values are the
// zero T.
func (r *table[T]) IterateFree() *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	free := make([]int64, 0, r.size-int64(len(r.keys)))
	next := int64(0)
	for _, id := range r.keys {
		for ; next < id; next++ {
			free = append(free, next)
		}
		next = id + 1
	}
	for ; next < r.size; next++ {
		free = append(free, next)
	}
	return newIterator(sequence.Of(free), map[int64]T{})
}

// IterateRange iterates over the claimed ids within [from, to].
func (r *table[T]) IterateRange(from, to int64) *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.snapshot(r.span(from, to))
}

// span returns the view of claimed ids within [from, to].
func (r *table[T]) span(from, to int64) sequence.Adjacent[int64] {
	ids := r.ids()
	beg := sequence.LowerBound(ids, from).Beg()
	end := sequence.UpperBound(ids, to).Beg()
	if end < beg {
		end = beg
	}
	return sequence.New(r.keys, beg, end)
}

// snapshot copies the ids covered by s together with their values so the
// iterator stays usable after the lock is released.
func (r *table[T]) snapshot(s sequence.Adjacent[int64]) *Iterator[T] {
	keys := slices.Clone(s.Slice())
	values := make(map[int64]T, len(keys))
	for _, id := range keys {
		values[id] = r.table[id]
	}
	return newIterator(sequence.Of(keys), values)
}

func (r *table[T]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T]) Has(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.table[id]
	return ok
}

func (r *table[T]) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.isFree(id)
}

func (r *table[T]) isFree(id int64) bool {
	_, ok := r.table[id]
	return !ok
}

func (r *table[T]) FindFree() (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFree()
}

// findFree returns the lowest id that is not claimed.
func (r *table[T]) findFree() (int64, error) {
	next := int64(0)
	for _, id := range r.keys {
		if id != next {
			break
		}
		next++
	}
	if next >= r.size {
		return 0, errors.Wrapf(ErrNoFree, "all %d entries claimed", r.size)
	}
	return next, nil
}

func (r *table[T]) FindFreeRange(start, size int64) ([]int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeRange(start, size)
}

func (r *table[T]) findFreeRange(start, size int64) ([]int64, error) {
	if size < 1 {
		return nil, errors.Newf("invalid range size %d", size)
	}
	if start < 0 || start > r.size-1 {
		return nil, errors.Wrapf(ErrOutOfRange, "start %d is outside of max allowed entries: %d", start, r.size)
	}
	if size > r.size-start {
		return nil, errors.Wrapf(ErrOutOfRange, "range %d+%d is bigger then max allowed entries: %d", start, size, r.size)
	}
	end := start + size - 1

	// the first claimed id at or after start must lie beyond end
	ids := r.ids()
	if pos := sequence.LowerBound(ids, start).Beg(); pos < ids.End() && ids.At(pos) <= end {
		return nil, errors.Wrapf(ErrExists, "entry %d in use in range: start: %d, end %d", ids.At(pos), start, end)
	}

	free := make([]int64, 0, size)
	for id := start; id <= end; id++ {
		free = append(free, id)
	}
	return free, nil
}

func (r *table[T]) FindFreeSize(size int64) ([]int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFreeSize(size)
}

// findFreeSize returns the size lowest ids that are not claimed.
func (r *table[T]) findFreeSize(size int64) ([]int64, error) {
	if size < 1 {
		return nil, errors.Newf("invalid size %d", size)
	}
	if size > r.size-int64(len(r.keys)) {
		return nil, errors.Wrapf(ErrNoFree, "size %d is bigger then free entries: %d", size, r.size-int64(len(r.keys)))
	}
	free := make([]int64, 0, size)
	next := 0
	for id := int64(0); id < r.size && int64(len(free)) < size; id++ {
		if next < len(r.keys) && r.keys[next] == id {
			next++
			continue
		}
		free = append(free, id)
	}
	return free, nil
}

func (r *table[T]) add(id int64, d T, init bool) error {
	if err := r.validate(id, init); err != nil {
		return err
	}
	if !r.isFree(id) {
		return errors.Wrapf(ErrExists, "entry %d", id)
	}
	r.table[id] = d
	pos := sequence.LowerBound(r.ids(), id).Beg()
	r.keys = slices.Insert(r.keys, pos, id)
	return nil
}

// addAll claims ids, undoing the claims made so far when one fails.
func (r *table[T]) addAll(ids []int64, d T) error {
	for i, id := range ids {
		if err := r.add(id, d, false); err != nil {
			for _, done := range ids[:i] {
				r.remove(done)
			}
			return err
		}
	}
	return nil
}

func (r *table[T]) update(id int64, d T) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	if r.isFree(id) {
		return errors.Wrapf(ErrNotFound, "entry %d", id)
	}
	r.table[id] = d
	return nil
}

func (r *table[T]) delete(id int64) error {
	if err := r.validate(id, false); err != nil {
		return err
	}
	r.remove(id)
	return nil
}

func (r *table[T]) remove(id int64) {
	if r.isFree(id) {
		return
	}
	delete(r.table, id)
	if m := sequence.Match(r.ids(), id); m.IsValid() {
		r.keys = slices.Delete(r.keys, m.Beg(), m.End())
	}
}

func (r *table[T]) GetAll() map[int64]T {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.collect(r.ids())
}

// GetRange returns the entries claimed within [from, to].
func (r *table[T]) GetRange(from, to int64) map[int64]T {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.collect(r.span(from, to))
}

func (r *table[T]) collect(s sequence.Adjacent[int64]) map[int64]T {
	entries := make(map[int64]T, s.Len())
	for _, id := range s.All() {
		entries[id] = r.table[id]
	}
	return entries
}
