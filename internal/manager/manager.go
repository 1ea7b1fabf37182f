// Package manager implements the resource-management loop every admin screen
// shares: a held collection loaded from a list endpoint, filter and
// pagination state that re-triggers the load, and mutation handling that
// reconciles the collection either by refetching it or by patching one entry
// in place with server-returned values.
package manager

import (
	"context"
	"net/url"
	"sync"

	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

// Strategy selects how the held collection is reconciled after a successful
// mutation. It is an explicit parameter per call site, never an implicit
// per-screen habit.
type Strategy int

const (
	// Refetch re-runs the list fetch; always correct, higher latency.
	Refetch Strategy = iota
	// PatchInPlace updates the matching entry by id using values the server
	// returned. Used for toggles, balance updates, role changes.
	PatchInPlace
)

// Query is the filter/pagination state handed to a Fetcher.
type Query struct {
	Page     int
	PageSize int
	Filters  url.Values
}

// Values encodes the query for a page/limit list endpoint.
func (q Query) Values() url.Values {
	return utils.ClampPagination(q.Page, q.PageSize).Query(q.Filters)
}

// Page is one fetched slice of the remote collection.
type Page[T any] struct {
	Items         []T
	Total         int64
	TotalReported bool
}

type Fetcher[T any] func(ctx context.Context, q Query) (Page[T], error)

// Patch carries the server-derived update applied to one held entry after a
// PatchInPlace mutation.
type Patch[T any] struct {
	ID     string
	Apply  func(*T)
	Remove bool
}

// Collection is the client's only copy of a remote resource list. It is
// transient: loaded on demand, replaced wholesale on refetch, and discarded
// with its owner.
type Collection[T any] struct {
	mu     sync.Mutex
	fetch  Fetcher[T]
	id     func(T) string
	notify feedback.Notifier

	items         []T
	total         int64
	totalReported bool
	filters       url.Values

	page     int
	pageSize int

	loading bool
	busy    bool
}

func New[T any](fetch Fetcher[T], id func(T) string, notify feedback.Notifier) *Collection[T] {
	if notify == nil {
		notify = feedback.Discard{}
	}
	return &Collection[T]{
		fetch:    fetch,
		id:       id,
		notify:   notify,
		filters:  url.Values{},
		page:     1,
		pageSize: 20,
	}
}

// Load runs the list fetch with the current filter and page state. On
// failure the previously held items stay untouched and the error is
// surfaced through the feedback channel.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	q := Query{Page: c.page, PageSize: c.pageSize, Filters: cloneValues(c.filters)}
	c.loading = true
	c.mu.Unlock()

	page, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.notify.Error(errors.Message(err))
		return err
	}

	c.items = page.Items
	c.total = page.Total
	c.totalReported = page.TotalReported
	return nil
}

// SetPage moves to a 1-based page and reloads.
func (c *Collection[T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	c.page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetFilter updates one filter parameter, resets to the first page, and
// reloads. An empty value clears the filter.
func (c *Collection[T]) SetFilter(ctx context.Context, key, value string) error {
	c.SetFilterValue(key, value)
	return c.Load(ctx)
}

// SetFilterValue stages a filter change without reloading, for callers that
// set several parameters before one Load.
func (c *Collection[T]) SetFilterValue(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		c.filters.Del(key)
	} else {
		c.filters.Set(key, value)
	}
	c.page = 1
}

// Items returns a copy of the held collection; callers never alias the
// internal slice.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the held entry with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HasNext prefers the server-reported total and falls back to the
// full-page heuristic when the endpoint returns a bare array.
func (c *Collection[T]) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.totalReported {
		return int64(c.page*c.pageSize) < c.total
	}
	return len(c.items) == c.pageSize
}

// Mutate runs one write operation with duplicate-submission gating and the
// chosen reconciliation strategy. The operation returns the patch to apply
// when the strategy is PatchInPlace; under Refetch the patch is ignored and
// the collection is reloaded. On failure nothing in the collection changes
// and the error is surfaced through the feedback channel, so the caller's
// dialog can stay open with its draft intact.
func (c *Collection[T]) Mutate(ctx context.Context, strategy Strategy, successMsg string, op func(ctx context.Context) (Patch[T], error)) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return errors.Busy("Another change")
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	patch, err := op(ctx)
	if err != nil {
		c.notify.Error(errors.Message(err))
		return err
	}

	if strategy == PatchInPlace {
		c.applyPatch(patch)
	} else {
		if err := c.Load(ctx); err != nil {
			return err
		}
	}

	if successMsg != "" {
		c.notify.Success(successMsg)
	}
	return nil
}

// Busy reports whether a mutation is in flight.
func (c *Collection[T]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Collection[T]) applyPatch(patch Patch[T]) {
	if patch.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) != patch.ID {
			continue
		}
		if patch.Remove {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else if patch.Apply != nil {
			patch.Apply(&c.items[i])
		}
		return
	}
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for key, vals := range v {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
