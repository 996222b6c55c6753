package hdns

import "context"

// pageFunc returns one page of a listing. meta may be nil when the API omits
// pagination metadata, which the Pager treats as a single-page result.
type pageFunc[T any] func(ctx context.Context, page int) ([]T, *Meta, error)

// Pager walks a paginated listing element by element, fetching a page only
// once the previous one is exhausted. Each page is fetched at most once. A
// Pager is not safe for concurrent use; share the results, not the cursor.
//
//	pager := client.Zones.Pager(ctx, hdns.ZoneListOpts{})
//	for pager.Next() {
//		zone := pager.Current()
//		// ...
//	}
//	if err := pager.Err(); err != nil {
//		// handle err
//	}
type Pager[T any] struct {
	ctx     context.Context
	fetch   pageFunc[T]
	page    int // page the buffer was fetched from
	last    int // last page reported by the most recent meta
	buf     []T
	idx     int
	cur     T
	meta    *Meta
	started bool
	done    bool
	err     error
}

// newPager returns a cursor that starts at startPage (1 when zero or
// negative) and walks forward until the listing reports no further pages.
func newPager[T any](ctx context.Context, startPage int, fetch pageFunc[T]) *Pager[T] {
	if startPage <= 0 {
		startPage = 1
	}
	return &Pager[T]{ctx: ctx, fetch: fetch, page: startPage}
}

// Next advances the cursor, returning false once the listing is exhausted or
// a fetch failed. Check Err afterwards to tell the two apart.
func (p *Pager[T]) Next() bool {
	if p.done {
		return false
	}
	if p.idx < len(p.buf) {
		p.cur = p.buf[p.idx]
		p.idx++
		return true
	}
	// Buffer exhausted; move on only if the listing reports another page.
	if p.started {
		if p.page >= p.last {
			p.done = true
			return false
		}
		p.page++
	}
	if !p.fetchPage() {
		return false
	}
	p.cur = p.buf[0]
	p.idx = 1
	return true
}

// fetchPage loads p.page into the buffer. It returns false when iteration
// must stop, on error or on an empty page.
func (p *Pager[T]) fetchPage() bool {
	elems, meta, err := p.fetch(p.ctx, p.page)
	p.started = true
	if err != nil {
		p.err = err
		p.done = true
		return false
	}
	p.meta = meta
	if meta != nil && meta.Pagination.LastPage > 0 {
		p.last = meta.Pagination.LastPage
	} else {
		// No usable metadata means there is nothing beyond this page.
		p.last = p.page
	}
	p.buf = elems
	p.idx = 0
	if len(elems) == 0 {
		p.done = true
		return false
	}
	return true
}

// Current returns the element the last successful Next call moved to.
func (p *Pager[T]) Current() T {
	return p.cur
}

// Err returns the error that stopped iteration, or nil if it ended normally.
func (p *Pager[T]) Err() error {
	return p.err
}

// Meta returns the metadata of the most recently fetched page, or nil before
// the first fetch.
func (p *Pager[T]) Meta() *Meta {
	return p.meta
}

// Collect drains p and returns all remaining elements in listing order.
func Collect[T any](p *Pager[T]) ([]T, error) {
	var out []T
	for p.Next() {
		out = append(out, p.Current())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
