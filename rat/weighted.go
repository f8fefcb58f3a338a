package rat

import (
	"fmt"
	"sort"
)

// WeightedSet maps cumulative weight to payload. Each payload is keyed by
// the running total at the time it was added, so Draw(n) for n uniform in
// [0, Total()) picks payloads in proportion to their weights.
type WeightedSet[T any] struct {
	keys   []int
	values []T
	total  int
}

// Add appends v with the given weight. Non-positive weights can never be
// drawn and are skipped.
func (s *WeightedSet[T]) Add(weight int, v T) {
	if weight <= 0 {
		return
	}
	s.keys = append(s.keys, s.total)
	s.values = append(s.values, v)
	s.total += weight
}

// Draw returns the payload with the greatest key <= n. Callers must check
// Total() first; drawing from an empty set is a programming error.
func (s *WeightedSet[T]) Draw(n int) T {
	if s.total <= 0 {
		panic("rat: draw from empty weighted set")
	}
	if n < 0 || n >= s.total {
		panic(fmt.Sprintf("rat: draw offset %d outside [0, %d)", n, s.total))
	}
	// First key strictly greater than n, minus one.
	i := sort.SearchInts(s.keys, n+1) - 1
	return s.values[i]
}

func (s *WeightedSet[T]) Total() int { return s.total }

func (s *WeightedSet[T]) Len() int { return len(s.keys) }

// Reset empties the set, keeping allocated capacity.
func (s *WeightedSet[T]) Reset() {
	s.keys = s.keys[:0]
	clear(s.values)
	s.values = s.values[:0]
	s.total = 0
}
