package dataset

import "fmt"

// Range is the half-open interval [Begin, End).
type Range struct {
	Begin, End int
}

func (r Range) Len() int {
	return r.End - r.Begin
}

// Sharder defines a sequence of fixed number of buckets, and the
// allocation of a zero-based sequence of integers into these buckets.
// The allocations follows the principle that these buckets have
// similar size.
type Sharder struct {
	Shards int
}

func NewSharder(shards int) Sharder {
	if shards <= 0 {
		panic(fmt.Sprintf("shards (%d) <= 0", shards))
	}
	return Sharder{shards}
}

// Shard divides [0, n) into min(n, Shards) contiguous ranges whose
// lengths differ by at most one, longer ranges first.
func (s Sharder) Shard(n int) []Range {
	if n <= 0 {
		return nil
	}
	b := s.Shards
	if n < b {
		b = n
	}
	bucketSize := n / b
	extendedBuckets := n % b

	ranges := make([]Range, 0, b)
	begin := 0
	for j := 0; j < b; j++ {
		size := bucketSize
		if j < extendedBuckets {
			size++
		}
		ranges = append(ranges, Range{begin, begin + size})
		begin += size
	}
	return ranges
}
