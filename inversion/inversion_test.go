package inversion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountAndSortScenarios(t *testing.T) {
	cases := []struct {
		name   string
		in     []int
		count  int64
		sorted []int
	}{
		{"ascending", []int{1, 2, 3, 4, 5}, 0, []int{1, 2, 3, 4, 5}},
		{"descending", []int{5, 4, 3, 2, 1}, 10, []int{1, 2, 3, 4, 5}},
		{"mixed", []int{2, 4, 1, 3, 5}, 3, []int{1, 2, 3, 4, 5}},
		{"duplicates", []int{1, 1, 1}, 0, []int{1, 1, 1}},
		{"empty", []int{}, 0, []int{}},
		{"single", []int{7}, 0, []int{7}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq := append([]int{}, tc.in...)
			n, err := CountAndSort(seq, 0, len(seq)-1)

			require.NoError(t, err)
			assert.Equal(t, tc.count, n)
			assert.Equal(t, tc.sorted, seq)
		})
	}
}

func TestCountAndSortSubrange(t *testing.T) {
	seq := []int{9, 5, 4, 3, 0}

	n, err := CountAndSort(seq, 1, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []int{9, 3, 4, 5, 0}, seq)
}

func TestCountAndSortInvalidRange(t *testing.T) {
	seq := []int{3, 2, 1}

	for _, r := range [][2]int{{-1, 2}, {0, 3}, {2, 0}, {5, 1}} {
		_, err := CountAndSort(seq, r[0], r[1])
		assert.ErrorIs(t, err, ErrInvalidRange, "low=%d high=%d", r[0], r[1])
	}

	assert.Equal(t, []int{3, 2, 1}, seq)

	n, err := CountAndSort(seq, 2, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMaximumInversions(t *testing.T) {
	for _, n := range []int{2, 10, 257, 1000} {
		seq := make([]int, n)
		for i := range seq {
			seq[i] = n - i
		}

		want := int64(n) * int64(n-1) / 2
		for _, name := range Names() {
			c, err := Lookup(name)
			require.NoError(t, err)

			work := append([]int{}, seq...)
			assert.Equal(t, want, c(work), "%s n=%d", name, n)
		}
	}
}

func TestAllEqual(t *testing.T) {
	seq := make([]int, 500)
	for i := range seq {
		seq[i] = 42
	}

	for _, name := range Names() {
		c, _ := Lookup(name)
		assert.Zero(t, c(append([]int{}, seq...)), name)
	}
}

func TestCountersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(300)
		seq := make([]int, n)
		for i := range seq {
			// 작은 값 범위로 중복을 충분히 만든다
			seq[i] = rng.Intn(50) - 25
		}

		want := BruteForce(seq)

		for _, name := range []string{Insertion, Merge, ParallelMerge} {
			c, _ := Lookup(name)
			work := append([]int{}, seq...)

			assert.Equal(t, want, c(work), "%s on %v", name, seq)
			assert.True(t, IsSorted(work), "%s left input unsorted", name)
		}
	}
}

func TestParallelMergeCountLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seq := make([]int, 200000)
	for i := range seq {
		seq[i] = rng.Intn(1000000)
	}

	ref := append([]int{}, seq...)
	want := MergeCount(ref)

	got := ParallelMergeCount(seq)

	assert.Equal(t, want, got)
	assert.Equal(t, ref, seq)

	used, capacity := workerPoolStatus()
	assert.Zero(t, used)
	assert.Positive(t, capacity)
}

func TestBruteForceKeepsInput(t *testing.T) {
	seq := []int{3, 1, 2}

	assert.Equal(t, int64(2), BruteForce(seq))
	assert.Equal(t, []int{3, 1, 2}, seq)
}

func TestSorted(t *testing.T) {
	seq := []int{2, 4, 1, 3, 5}

	for _, name := range Names() {
		c, _ := Lookup(name)
		out, n := Sorted(seq, c)

		assert.Equal(t, int64(3), n, name)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, out, name)
	}
	assert.Equal(t, []int{2, 4, 1, 3, 5}, seq)
}

func TestLookupUnknown(t *testing.T) {
	c, err := Lookup("bogosort")

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestSorts(t *testing.T) {
	assert.False(t, Sorts(Brute))
	assert.True(t, Sorts(Merge))
	assert.True(t, Sorts(Insertion))
}
