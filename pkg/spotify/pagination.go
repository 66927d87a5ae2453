package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
)

// MaxPageLimit is the largest page size the API accepts. Larger requested
// limits are clamped.
const MaxPageLimit = 50

type paginationKind int

const (
	paginateAll paginationKind = iota
	paginateLimit
	paginatePage
)

// Pagination is the paging policy for a pageable endpoint: everything,
// the first n items, or a single window of the result set.
type Pagination struct {
	kind   paginationKind
	limit  int
	offset int
}

// PaginateAll walks every page until the server runs out of items.
func PaginateAll() Pagination {
	return Pagination{kind: paginateAll}
}

// PaginateLimit collects at most limit items, starting at offset zero.
func PaginateLimit(limit int) Pagination {
	return Pagination{kind: paginateLimit, limit: limit}
}

// PaginatePage collects a single window of limit items starting at offset.
func PaginatePage(limit, offset int) Pagination {
	return Pagination{kind: paginatePage, limit: limit, offset: offset}
}

// Limit is the per-request page size, clamped to MaxPageLimit.
func (p Pagination) Limit() int {
	if p.kind == paginateAll || p.limit <= 0 || p.limit > MaxPageLimit {
		return MaxPageLimit
	}

	return p.limit
}

// Offset is the starting offset of the first request.
func (p Pagination) Offset() int {
	if p.kind == paginatePage {
		return p.offset
	}

	return 0
}

// done reports whether collection should stop after a page of pageSize
// items brought the running count to total.
func (p Pagination) done(pageSize, total int) bool {
	if pageSize < p.Limit() {
		return true
	}

	if p.kind == paginateAll {
		return false
	}

	return total >= p.Limit()
}

// Paged binds a pageable endpoint to a paging policy. Execute it eagerly
// with All, lazily with Iter, or page-by-page with Stream.
type Paged[T any] struct {
	endpoint   Pageable
	pagination Pagination
}

// NewPaged binds endpoint to an explicit paging policy.
func NewPaged[T any](endpoint Pageable, pagination Pagination) *Paged[T] {
	return &Paged[T]{endpoint: endpoint, pagination: pagination}
}

// PagedAll collects every item the endpoint returns.
func PagedAll[T any](endpoint Pageable) *Paged[T] {
	return NewPaged[T](endpoint, PaginateAll())
}

// PagedWithLimit collects at most limit items.
func PagedWithLimit[T any](endpoint Pageable, limit int) *Paged[T] {
	return NewPaged[T](endpoint, PaginateLimit(limit))
}

// PagedWindow collects a single window of limit items starting at offset.
func PagedWindow[T any](endpoint Pageable, limit, offset int) *Paged[T] {
	return NewPaged[T](endpoint, PaginatePage(limit, offset))
}

// firstRequest resolves the endpoint and appends the policy's offset and
// limit after any endpoint parameters.
func (p *Paged[T]) firstRequest(client Client) (*Request, error) {
	req, err := buildRequest(client, p.endpoint)
	if err != nil {
		return nil, err
	}

	paging := QueryParams{}
	paging.PushInt("offset", p.pagination.Offset())
	paging.PushInt("limit", p.pagination.Limit())
	paging.AppendToURL(req.URL)

	return req, nil
}

// fetchPage executes one page request and decodes the envelope.
func (p *Paged[T]) fetchPage(ctx context.Context, client Client, req *Request) (*Page[T], error) {
	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := CheckResponse(resp); err != nil {
		return nil, err
	}

	var page Page[T]
	if err := decode(resp.Body, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// All collects items eagerly, page after page, until the policy or the
// server says stop. The first request uses the policy's offset; every
// later request follows the server's next link verbatim.
func (p *Paged[T]) All(ctx context.Context, client Client) ([]T, error) {
	req, err := p.firstRequest(client)
	if err != nil {
		return nil, err
	}

	var results []T

	for {
		page, err := p.fetchPage(ctx, client, req)
		if err != nil {
			return nil, err
		}

		results = append(results, page.Items...)

		if p.pagination.done(len(page.Items), len(results)) || page.Next == nil {
			return results, nil
		}

		next, err := url.Parse(*page.Next)
		if err != nil {
			return nil, fmt.Errorf("invalid next page URL %q: %w", *page.Next, err)
		}

		req = &Request{
			Method:      req.Method,
			URL:         next,
			ContentType: req.ContentType,
			Body:        req.Body,
		}
	}
}

type cursorState int

const (
	cursorStart cursorState = iota
	cursorNext
	cursorDone
)

// PageIterator walks a paginated result set lazily, fetching the next
// page only when the buffered one is exhausted. The cursor is guarded by
// a lock so page fetches can be shared, but Next itself is meant for a
// single consumer.
type PageIterator[T any] struct {
	client Client
	paged  *Paged[T]

	mu    sync.RWMutex
	state cursorState
	next  *url.URL
	total int
	buf   []T
}

// Iter returns a lazy iterator over the paginated result set.
func (p *Paged[T]) Iter(client Client) *PageIterator[T] {
	return &PageIterator[T]{client: client, paged: p}
}

// Next returns the next item, fetching a page when needed. It returns
// ErrNoMoreItems once the result set is exhausted.
func (it *PageIterator[T]) Next(ctx context.Context) (T, error) {
	var zero T

	if len(it.buf) == 0 {
		items, err := it.nextPage(ctx)
		if err != nil {
			return zero, err
		}

		if len(items) == 0 {
			return zero, ErrNoMoreItems
		}

		// Buffer in reverse so items pop off the tail in forward order.
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}

		it.buf = items
	}

	item := it.buf[len(it.buf)-1]
	it.buf = it.buf[:len(it.buf)-1]

	return item, nil
}

// ForEach calls fn for every remaining item, stopping on the first error.
func (it *PageIterator[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for {
		item, err := it.Next(ctx)
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}

// nextPage fetches the page the cursor points at and advances the
// cursor. An empty slice with a nil error means the cursor is done.
func (it *PageIterator[T]) nextPage(ctx context.Context) ([]T, error) {
	req, err := it.pageRequest()
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, nil
	}

	page, err := it.paged.fetchPage(ctx, it.client, req)
	if err != nil {
		return nil, err
	}

	if err := it.advance(len(page.Items), page.Next); err != nil {
		return nil, err
	}

	return page.Items, nil
}

// pageRequest builds the request for the cursor's current position, or
// nil when the cursor is done.
func (it *PageIterator[T]) pageRequest() (*Request, error) {
	it.mu.RLock()
	state, next := it.state, it.next
	it.mu.RUnlock()

	switch state {
	case cursorDone:
		return nil, nil
	case cursorStart:
		return it.paged.firstRequest(it.client)
	default:
		req, err := buildRequest(it.client, it.paged.endpoint)
		if err != nil {
			return nil, err
		}

		req.URL = next

		return req, nil
	}
}

func (it *PageIterator[T]) advance(pageSize int, next *string) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.total += pageSize

	if it.paged.pagination.done(pageSize, it.total) || next == nil {
		it.state = cursorDone
		it.next = nil

		return nil
	}

	u, err := url.Parse(*next)
	if err != nil {
		it.state = cursorDone

		return fmt.Errorf("invalid next page URL %q: %w", *next, err)
	}

	it.state = cursorNext
	it.next = u

	return nil
}

// PageResult is one page delivered on a Stream channel.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// Stream delivers pages on a channel fed by a background goroutine. The
// channel closes after the last page, after an error (delivered as the
// final result), or when ctx is cancelled.
func (p *Paged[T]) Stream(ctx context.Context, client Client) <-chan PageResult[T] {
	ch := make(chan PageResult[T], 1)

	go func() {
		defer close(ch)

		it := p.Iter(client)

		for {
			items, err := it.nextPage(ctx)
			if err != nil {
				select {
				case ch <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			if len(items) == 0 {
				return
			}

			select {
			case ch <- PageResult[T]{Items: items}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
