// Package bloom provides probabilistic URL seen-tracking for crawl
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which URLs a crawl has already seen. False positives
// are possible; false negatives are not, so a URL is never crawled
// twice but may occasionally be skipped.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL might have been seen.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd marks a URL as seen and reports whether it might have been
// seen before. Equivalent to Test followed by Add in a single pass.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs seen.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
