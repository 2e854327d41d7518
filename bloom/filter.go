// Package bloom provides a probabilistic set of already-scraped source IDs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter pre-screens source IDs before a storage lookup. A negative answer
// is definite; a positive answer must be confirmed.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewFilterFrom creates a filter holding ids.
func NewFilterFrom(ids []string, fpRate float64) *Filter {
	f := NewFilter(uint(len(ids)), fpRate)
	for _, id := range ids {
		f.Add(id)
	}
	return f
}

// Add records a source ID.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// MayContain reports whether id might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) MayContain(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
