package hist

// Hist counts occurrences of integer keys, e.g., word ids of an
// encoded corpus.
type Hist interface {
	At(key int) int64
	Inc(key, count int)
	Len() int

	// Total returns the sum of all counts.
	Total() int64

	// ForEach access elements in the histogram one-by-one. For each
	// element <key, count>, it calls p(key, count).  If p returns
	// nil, it goes on to rest elements; otherwise, it stops the
	// traversal and returns the error from p.
	ForEach(p func(key int, count int64) error) error

	Clone() Hist
}
