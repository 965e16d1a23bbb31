package sgns

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestingSequentialStore() *SequentialStore {
	s, ids := CreateTestingSampler()
	return NewSequentialStore(Windows(ids, testingWindow), s, testingNegative)
}

func TestSequentialStoreLen(t *testing.T) {
	st := createTestingSequentialStore()
	assert.Equal(t, 5*testingWindow*2*(1+testingNegative), st.Len())
}

func TestSequentialStoreCycles(t *testing.T) {
	st := createTestingSequentialStore()
	var first, second []Example
	for i := 0; i < st.Len(); i++ {
		ex, e := st.At(i)
		require.NoError(t, e)
		first = append(first, ex)
	}
	assert.Equal(t, int64(0), st.Restarts())

	// Past the end, the store starts over instead of failing.
	for i := st.Len(); i < 2*st.Len(); i++ {
		ex, e := st.At(i)
		require.NoError(t, e)
		second = append(second, ex)
	}
	assert.Equal(t, int64(1), st.Restarts())
	assert.Equal(t, int64(2*st.Len()), st.Served())
	assert.Equal(t, testingPositives, positives(first))
	assert.Equal(t, positives(first), positives(second))
}

func TestSequentialStoreIgnoresIndex(t *testing.T) {
	st := createTestingSequentialStore()
	a, e := st.At(7)
	require.NoError(t, e)
	b, e := st.At(7)
	require.NoError(t, e)
	c, e := st.At(-100)
	require.NoError(t, e)

	// Whatever is asked for, calls walk the stream in order.
	assert.Equal(t, testingPositives[0], a)
	assert.Equal(t, int8(0), b.Label)
	assert.Equal(t, int8(0), c.Label)
}

func TestSequentialStoreEmpty(t *testing.T) {
	s, _ := CreateTestingSampler()
	st := NewSequentialStore(nil, s, testingNegative)
	assert.Equal(t, 0, st.Len())
	_, e := st.Next()
	assert.Error(t, e)
}

func createTestingIndexedStore(seed uint64) *IndexedStore {
	s, ids := CreateTestingSampler()
	return NewIndexedStore(Windows(ids, testingWindow), s.Table(),
		testingWindow, testingNegative, seed)
}

func TestIndexedStoreMatchesStreamLayout(t *testing.T) {
	st := createTestingIndexedStore(testingSeed)
	seq := createTestingSequentialStore()
	require.Equal(t, seq.Len(), st.Len())

	var got []Example
	for i := 0; i < st.Len(); i++ {
		ex, e := st.At(i)
		require.NoError(t, e)
		ref, e := seq.Next()
		require.NoError(t, e)
		assert.Equal(t, ref.Centre, ex.Centre)
		assert.Equal(t, ref.Label, ex.Label)
		got = append(got, ex)
	}
	assert.Equal(t, testingPositives, positives(got))
}

func TestIndexedStoreIsDeterministic(t *testing.T) {
	st := createTestingIndexedStore(testingSeed)
	other := createTestingIndexedStore(testingSeed)
	for i := 0; i < st.Len(); i++ {
		a, e := st.At(i)
		require.NoError(t, e)
		b, e := st.At(i)
		require.NoError(t, e)
		c, e := other.At(i)
		require.NoError(t, e)
		assert.Equal(t, a, b)
		assert.Equal(t, a, c)

		// Indices wrap around.
		d, e := st.At(i + 3*st.Len())
		require.NoError(t, e)
		assert.Equal(t, a, d)
	}
}

func TestIndexedStoreLocate(t *testing.T) {
	st := createTestingIndexedStore(testingSeed)
	// Each window has 2 slots of 3 examples.
	for _, tc := range []struct{ i, window, slot, position int }{
		{0, 0, 0, 0},
		{2, 0, 0, 2},
		{3, 0, 1, 0},
		{6, 1, 0, 0},
		{29, 4, 1, 2},
		{30, 0, 0, 0},
		{-1, 4, 1, 2},
	} {
		w, s, p := st.Locate(tc.i)
		assert.Equal(t, []int{tc.window, tc.slot, tc.position}, []int{w, s, p},
			"i=%d", tc.i)
	}
}

func TestIndexedStoreConcurrentAccess(t *testing.T) {
	st := createTestingIndexedStore(testingSeed)
	want := make([]Example, st.Len())
	for i := range want {
		ex, e := st.At(i)
		require.NoError(t, e)
		want[i] = ex
	}

	var wg sync.WaitGroup
	got := make([][]Example, 4)
	for g := range got {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			got[g] = make([]Example, st.Len())
			for i := st.Len() - 1; i >= 0; i-- {
				got[g][i], _ = st.At(i)
			}
		}(g)
	}
	wg.Wait()
	for g := range got {
		assert.Equal(t, want, got[g])
	}
}

func TestIndexedStoreEmpty(t *testing.T) {
	s, _ := CreateTestingSampler()
	st := NewIndexedStore(nil, s.Table(), testingWindow, testingNegative, 1)
	assert.Equal(t, 0, st.Len())
	_, e := st.At(0)
	assert.Error(t, e)
}
