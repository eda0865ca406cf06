package inventory

import (
	"maps"
	"slices"
)

// Allocation records how many boxes one holder reserved on each ledger row, keyed by the
// row's location code. Releasing an allocation frees exactly the rows it was taken from.
type Allocation map[string]int

// Total sums the boxes of the allocation.
func (a Allocation) Total() int {
	total := 0
	for _, boxes := range a {
		total += boxes
	}
	return total
}

// Clone returns an independent copy. The copy of a nil allocation is empty, not nil.
func (a Allocation) Clone() Allocation {
	c := make(Allocation, len(a))
	for code, boxes := range a {
		if boxes > 0 {
			c[code] = boxes
		}
	}
	return c
}

// Take removes up to boxes from the allocation and returns the removed part. Locations in
// prefer are drained first, the rest in location code order.
func (a Allocation) Take(boxes int, prefer ...string) Allocation {
	taken := make(Allocation)
	order := append(slices.Clone(prefer), slices.Sorted(maps.Keys(a))...)

	for _, code := range order {
		if boxes <= 0 {
			break
		}
		n := min(boxes, a[code])
		if n <= 0 {
			continue
		}
		taken[code] += n
		boxes -= n
		a[code] -= n
		if a[code] == 0 {
			delete(a, code)
		}
	}
	return taken
}
