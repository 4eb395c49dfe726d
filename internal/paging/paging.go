// Package paging slices ordered lists into fixed-size pages.
package paging

const DefaultPageSize = 10

// Paginate returns the page-th slice of size items, 1-based. Pages below 1
// are treated as 1; pages past the end are empty. The result shares
// items' backing array but cannot append into it.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if page-1 >= (len(items)+size-1)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end:end]
}

// TotalPages returns the number of non-empty pages for n items.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Pager tracks a current page. Next is unbounded; Prev stops at 1.
type Pager struct {
	Page int
}

func NewPager() Pager {
	return Pager{Page: 1}
}

// Current returns the page, treating values below 1 as 1.
func (p Pager) Current() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p Pager) Next() Pager {
	return Pager{Page: p.Current() + 1}
}

func (p Pager) Prev() Pager {
	return Pager{Page: max(p.Current()-1, 1)}
}

func (p Pager) Reset() Pager {
	return NewPager()
}
