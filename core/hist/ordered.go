package hist

import (
	"fmt"
	"math"
	"sort"
)

// Ordered represents a histogram using two arrays, Keys and Counts,
// where Keys are kept in the order they were first seen.  Sampling
// tables built from an Ordered histogram therefore enumerate words in
// corpus discovery order.
type Ordered struct {
	Keys   []int32
	Counts []int64
	index  map[int32]int
}

func NewOrdered() *Ordered {
	return &Ordered{index: make(map[int32]int)}
}

// In some cases, we know the maximum number of distinct keys, e.g.,
// the vocabulary size.  Reserving capacity reduces the cost of
// re-allocation in Inc.
func NewOrderedAndReserve(cap int) *Ordered {
	return &Ordered{
		Keys:   make([]int32, 0, cap),
		Counts: make([]int64, 0, cap),
		index:  make(map[int32]int, cap)}
}

// CountIds builds the histogram of an encoded sequence.
func CountIds(ids []int32) *Ordered {
	o := NewOrdered()
	for _, id := range ids {
		o.Inc(int(id), 1)
	}
	return o
}

// Len makes Ordered compatible with sort.Interface.
func (o *Ordered) Len() int {
	return len(o.Keys)
}

// Less orders elements by descending count, ties by ascending key.
func (o *Ordered) Less(i, j int) bool {
	return o.Counts[i] > o.Counts[j] ||
		(o.Counts[i] == o.Counts[j] && o.Keys[i] < o.Keys[j])
}

func (o *Ordered) Swap(i, j int) {
	o.Keys[i], o.Keys[j] = o.Keys[j], o.Keys[i]
	o.Counts[i], o.Counts[j] = o.Counts[j], o.Counts[i]
	o.index[o.Keys[i]] = i
	o.index[o.Keys[j]] = j
}

// String prints an Ordered variable the same format as a slice.
func (o Ordered) String() string {
	out := "[ "
	for i, key := range o.Keys {
		out += fmt.Sprintf("%d:%d ", key, o.Counts[i])
	}
	out += "]"
	return out
}

func (o *Ordered) At(key int) int64 {
	if i, ok := o.index[int32(key)]; ok {
		return o.Counts[i]
	}
	return 0
}

// Inc increases the count of key, appending key if it has not been
// seen before.
func (o *Ordered) Inc(key, count int) {
	if key < 0 || key > math.MaxInt32 {
		panic(fmt.Sprintf("key (%d) out of range [0, MaxInt32]", key))
	}
	if count <= 0 {
		panic(fmt.Sprintf("count (%d) <= 0", count))
	}
	if o.index == nil {
		o.index = make(map[int32]int)
	}

	k := int32(key)
	i, ok := o.index[k]
	if !ok {
		o.index[k] = len(o.Keys)
		o.Keys = append(o.Keys, k)
		o.Counts = append(o.Counts, int64(count))
		return
	}
	if o.Counts[i] >= math.MaxInt64-int64(count) {
		panic(fmt.Sprintf("o[%d] = %d overflow", key, o.Counts[i]))
	}
	o.Counts[i] += int64(count)
}

func (o *Ordered) Total() int64 {
	var sum int64
	for _, c := range o.Counts {
		sum += c
	}
	return sum
}

// ForEach goes over elements in the order they are stored, which is
// discovery order unless the histogram has been sorted.
func (o *Ordered) ForEach(p func(key int, count int64) error) error {
	for i := 0; i < len(o.Keys); i++ {
		if e := p(int(o.Keys[i]), o.Counts[i]); e != nil {
			return e
		}
	}
	return nil
}

func (o *Ordered) Clone() Hist {
	n := NewOrderedAndReserve(o.Len())
	n.Keys = append(n.Keys, o.Keys...)
	n.Counts = append(n.Counts, o.Counts...)
	for i, k := range n.Keys {
		n.index[k] = i
	}
	return n
}

// Sorted returns a copy of o ordered by descending count.
func (o *Ordered) Sorted() *Ordered {
	n := o.Clone().(*Ordered)
	sort.Sort(n)
	return n
}
