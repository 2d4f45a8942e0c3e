package idxtable

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initEntries = map[int64]string{
	0:   "a",
	1:   "b",
	999: "c",
}

func TestNewTable(t *testing.T) {
	cases := map[string]struct {
		size            int64
		initEntries     map[int64]string
		validation      ValidationFn
		expectedEntries int
		expectedErr     bool
	}{

		"NewWithoutInitEntries": {
			size:            1000,
			initEntries:     nil,
			expectedEntries: 0,
		},
		"NewWithInitEntries": {
			size:            1000,
			initEntries:     initEntries,
			validation:      func(id int64) error { return nil },
			expectedEntries: 3,
		},
		"NewErrorMaxEntries": {
			size:            100,
			initEntries:     initEntries,
			expectedEntries: 2,
			expectedErr:     true,
		},
		"NewValidationSkippedForInit": {
			size:        1000,
			initEntries: initEntries,
			validation: func(id int64) error {
				return errors.New("validation")
			},
			expectedEntries: 3,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, tc.validation)
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		size              int64
		initEntries       map[int64]string
		newSuccessEntries map[int64]string
		newFailedEntries  map[int64]string
		expectedEntries   int
	}{

		"Normal": {
			size:        1000,
			initEntries: initEntries,
			newSuccessEntries: map[int64]string{
				10: "a",
				11: "b",
			},
			newFailedEntries: map[int64]string{
				1000: "x",
				-1:   "y",
				999:  "z",
			},
			expectedEntries: 5,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, nil)
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)
			}
			for id, d := range tc.newFailedEntries {
				err := r.Claim(id, d)
				assert.Error(t, err)
			}
			for id := range tc.initEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting initEntry: %d\n", name, id)
				}
			}
			for id, d := range tc.newSuccessEntries {
				got, err := r.Get(id)
				assert.NoError(t, err)
				assert.Equal(t, d, got)
			}
			// a failed claim must not overwrite an existing entry
			got, err := r.Get(999)
			assert.NoError(t, err)
			assert.Equal(t, "c", got)

			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestErrors(t *testing.T) {
	r, err := NewTable[string](10, map[int64]string{3: "a"}, nil)
	require.NoError(t, err)

	_, err = r.Get(4)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = r.Get(10)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(r.Claim(3, "b"), ErrExists))
	assert.True(t, errors.Is(r.Update(5, "b"), ErrNotFound))
	assert.True(t, errors.Is(r.ClaimRange(2, 3, "b"), ErrExists))
	_, err = r.ClaimSize(10, "b")
	assert.True(t, errors.Is(err, ErrNoFree))
}

func TestRelease(t *testing.T) {
	cases := map[string]struct {
		size                 int64
		initEntries          map[int64]string
		newSuccessEntries    map[int64]string
		expectedEntries      int
		deleteSuccessEntries []int64
		deleteNoopEntries    []int64
		expectedKeys         []int64
	}{

		"Normal": {
			size:        1000,
			initEntries: initEntries,
			newSuccessEntries: map[int64]string{
				10: "a",
				11: "b",
			},
			deleteSuccessEntries: []int64{0, 10, 11},
			deleteNoopEntries:    []int64{20, 21},
			expectedEntries:      2,
			expectedKeys:         []int64{1, 999},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, nil)
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)
			}
			for _, id := range tc.deleteSuccessEntries {
				err := r.Release(id)
				assert.NoError(t, err)
			}
			for _, id := range tc.deleteNoopEntries {
				err := r.Release(id)
				assert.NoError(t, err)
			}
			for _, id := range tc.deleteSuccessEntries {
				_, err := r.Get(id)
				assert.Error(t, err)
				if r.Has(id) {
					t.Errorf("%s not expecting deleted claim entry: %d\n", name, id)
				}
			}
			if diff := cmp.Diff(tc.expectedKeys, keysOf(r.Iterate())); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func keysOf[T any](i *Iterator[T]) []int64 {
	keys := []int64{}
	for i.Next() {
		keys = append(keys, i.ID())
	}
	return keys
}

func TestIterate(t *testing.T) {
	cases := map[string]struct {
		size        int64
		initEntries map[int64]string
		keys        []int64
	}{

		"Normal": {
			size:        1000,
			initEntries: initEntries,
			keys:        []int64{0, 1, 999},
		},
		"None": {
			size:        1000,
			initEntries: nil,
			keys:        []int64{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, nil)
			assert.NoError(t, err)

			i := r.Iterate()
			if diff := cmp.Diff(tc.keys, keysOf(i)); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestIterateValues(t *testing.T) {
	r, err := NewTable[string](1000, initEntries, nil)
	require.NoError(t, err)

	i := r.Iterate()
	require.True(t, i.Next())
	assert.False(t, i.IsConsecutive())
	assert.Equal(t, "a", i.Value())
	require.True(t, i.Next())
	assert.True(t, i.IsConsecutive())
	assert.Equal(t, NewEntry[string](1, "b"), i.Entry())
	require.True(t, i.Next())
	assert.False(t, i.IsConsecutive())

	// the snapshot is not affected by later changes
	require.NoError(t, r.Release(999))
	assert.Equal(t, "c", i.Value())
	assert.False(t, i.Next())
}

func TestIterateFree(t *testing.T) {
	cases := map[string]struct {
		size        int64
		initEntries map[int64]string
		keys        []int64
	}{
		"Edges": {
			size:        6,
			initEntries: map[int64]string{0: "a", 2: "b", 3: "c"},
			keys:        []int64{1, 4, 5},
		},
		"Full": {
			size:        2,
			initEntries: map[int64]string{0: "a", 1: "b"},
			keys:        []int64{},
		},
		"Empty": {
			size: 3,
			keys: []int64{0, 1, 2},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, nil)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.keys, keysOf(r.IterateFree())); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestIterateRange(t *testing.T) {
	r, err := NewTable[string](100, nil, nil)
	require.NoError(t, err)
	for _, id := range []int64{5, 10, 11, 12, 40, 99} {
		require.NoError(t, r.Claim(id, "x"))
	}

	cases := map[string]struct {
		from, to int64
		keys     []int64
	}{
		"Exact":    {from: 10, to: 12, keys: []int64{10, 11, 12}},
		"Wide":     {from: 0, to: 99, keys: []int64{5, 10, 11, 12, 40, 99}},
		"Gap":      {from: 13, to: 39, keys: []int64{}},
		"Partial":  {from: 11, to: 50, keys: []int64{11, 12, 40}},
		"Single":   {from: 99, to: 99, keys: []int64{99}},
		"Inverted": {from: 50, to: 10, keys: []int64{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.keys, keysOf(r.IterateRange(tc.from, tc.to))); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
			assert.Len(t, r.GetRange(tc.from, tc.to), len(tc.keys))
		})
	}
}

func TestClaimRange(t *testing.T) {
	cases := map[string]struct {
		size            int64
		initEntries     map[int64]string
		start           int64
		total           int64
		expectedEntries int
		expectedErr     bool
	}{

		"Normal": {
			size:            10,
			initEntries:     nil,
			start:           5,
			total:           5,
			expectedEntries: 5,
		},
		"ErrorMax": {
			size:            10,
			initEntries:     nil,
			start:           5,
			total:           6,
			expectedEntries: 0,
			expectedErr:     true,
		},
		"ErrorOverlap": {
			size:            1000,
			initEntries:     initEntries,
			start:           0,
			total:           5,
			expectedEntries: 3,
			expectedErr:     true,
		},
		"BesideClaimed": {
			size:            1000,
			initEntries:     initEntries,
			start:           2,
			total:           997,
			expectedEntries: 1000,
		},
		"ErrorZeroSize": {
			size:        16,
			start:       5,
			total:       0,
			expectedErr: true,
		},
		"ErrorNegativeSize": {
			size:        16,
			start:       5,
			total:       -1,
			expectedErr: true,
		},
		"ErrorSizeOverflow": {
			size:        16,
			start:       5,
			total:       math.MaxInt64,
			expectedErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, nil)
			assert.NoError(t, err)

			err = r.ClaimRange(tc.start, tc.total, "a")
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				for id := tc.start; id < tc.start+tc.total; id++ {
					if !r.Has(id) {
						t.Errorf("%s expecting entry: %d\n", name, id)
					}
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestClaimRangeRollback(t *testing.T) {
	r, err := NewTable[string](10, nil, func(id int64) error {
		if id == 7 {
			return errors.New("reserved")
		}
		return nil
	})
	require.NoError(t, err)

	assert.Error(t, r.ClaimRange(5, 4, "a"))
	assert.Equal(t, 0, r.Count())
}

func TestClaimSize(t *testing.T) {
	cases := map[string]struct {
		size            int64
		initEntries     map[int64]string
		total           int64
		expectedIDs     []int64
		expectedEntries int
		expectedErr     bool
	}{

		"Normal": {
			size:            1000,
			total:           1000,
			expectedEntries: 1000,
		},
		"SkipClaimed": {
			size:            1000,
			initEntries:     initEntries,
			total:           3,
			expectedIDs:     []int64{2, 3, 4},
			expectedEntries: 6,
		},
		"ErrorMax": {
			size:            10,
			total:           11,
			expectedEntries: 0,
			expectedErr:     true,
		},
		"ErrorZero": {
			size:        16,
			total:       0,
			expectedErr: true,
		},
		"ErrorNegative": {
			size:        16,
			total:       -1,
			expectedErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewTable[string](tc.size, tc.initEntries, nil)
			assert.NoError(t, err)

			ids, err := r.ClaimSize(tc.total, "a")
			if tc.expectedErr {
				assert.Error(t, err)
				assert.Nil(t, ids)
				assert.Equal(t, len(tc.initEntries), r.Count())
				return
			}
			assert.NoError(t, err)
			assert.Len(t, ids, int(tc.total))
			if tc.expectedIDs != nil {
				assert.Equal(t, tc.expectedIDs, ids)
			}

			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, len(r.GetAll()))
			}
		})
	}
}

func TestFindFreeBadSizes(t *testing.T) {
	r, err := NewTable[string](16, nil, nil)
	require.NoError(t, err)

	_, err = r.FindFreeSize(-1)
	assert.Error(t, err)
	_, err = r.FindFreeRange(5, math.MaxInt64)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = r.FindFreeRange(5, -3)
	assert.Error(t, err)

	ids, err := r.FindFreeRange(5, 11)
	assert.NoError(t, err)
	assert.Len(t, ids, 11)
}

func TestFindFree(t *testing.T) {
	r, err := NewTable[string](3, nil, nil)
	require.NoError(t, err)

	for want := int64(0); want < 3; want++ {
		id, err := r.ClaimDynamic("x")
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	_, err = r.FindFree()
	assert.True(t, errors.Is(err, ErrNoFree))

	require.NoError(t, r.Release(1))
	id, err := r.FindFree()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.True(t, r.IsFree(1))
}

func TestKeysStaySorted(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	r, err := NewTable[int](200, nil, nil)
	require.NoError(t, err)

	want := map[int64]int{}
	for i := 0; i < 2000; i++ {
		id := rng.Int64N(200)
		if rng.IntN(3) == 0 {
			require.NoError(t, r.Release(id))
			delete(want, id)
			continue
		}
		if _, ok := want[id]; ok {
			assert.Error(t, r.Claim(id, i))
			continue
		}
		require.NoError(t, r.Claim(id, i))
		want[id] = i
	}

	keys := keysOf(r.Iterate())
	assert.True(t, slices.IsSorted(keys))
	if diff := cmp.Diff(want, r.GetAll()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}
