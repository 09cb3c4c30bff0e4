// Package bloom provides set membership for page titles backed by a Bloom
// filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// TitleSet records visited page titles. The Bloom filter answers most
// negative lookups; positives are confirmed against the exact set so a
// false positive never skips an unvisited page.
type TitleSet struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewTitleSet creates a TitleSet sized for n expected titles with the given
// false positive rate for the filter.
func NewTitleSet(n uint, fpRate float64) *TitleSet {
	return &TitleSet{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}, n),
	}
}

// Add records title as visited.
func (s *TitleSet) Add(title string) {
	s.f.AddString(title)
	s.exact[title] = struct{}{}
}

// Has reports whether title was added.
func (s *TitleSet) Has(title string) bool {
	if !s.f.TestString(title) {
		return false
	}
	_, ok := s.exact[title]
	return ok
}

// Len returns the number of distinct titles added.
func (s *TitleSet) Len() int {
	return len(s.exact)
}

// EstimatedCount returns the filter's approximation of Len.
func (s *TitleSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
