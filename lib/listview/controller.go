// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package listview drives one paginated, searchable list: it owns the
// pagination cursor, debounces search input, dispatches fetches into
// a shared store.ListSlice, and tracks the view's load state.
//
// A Controller lives from Mount to Unmount. Unmount cancels the
// lifetime context, which aborts in-flight requests and guarantees
// their responses are never applied, and stops the debouncer so no
// timer outlives the view.
package listview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/clock"
	"github.com/FahadRazzaq1121/postapp/lib/debounce"
	"github.com/FahadRazzaq1121/postapp/lib/store"
)

// PageSize is the fixed page length of every list.
const PageSize = 10

// DefaultDebounce is the settle time for search input.
const DefaultDebounce = 500 * time.Millisecond

// State is the load state of a list view.
type State int

const (
	// Idle means nothing has been fetched since the view was created.
	Idle State = iota

	// Loading means the newest fetch has not completed.
	Loading

	// Loaded means the newest fetch was applied.
	Loaded

	// Errored means the newest fetch failed. Items still hold the last
	// applied page.
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "errored"
	}
}

// Cursor is the view-local pagination position.
type Cursor struct {
	Page  int
	Limit int

	// Search is the text as typed, echoed immediately.
	Search string

	// EffectiveSearch is the settled, trimmed search used for fetches.
	EffectiveSearch string
}

// Query converts the cursor to the list request it drives.
func (c Cursor) Query() api.ListQuery {
	return api.ListQuery{Page: c.Page, Limit: c.Limit, Search: c.EffectiveSearch}
}

// SessionGuard reacts to authorization failures, typically by clearing
// the token and returning to login. It reports whether it handled err.
type SessionGuard interface {
	HandleError(err error) bool
}

// Event reports a completed fetch.
type Event struct {
	State   State
	Cursor  Cursor
	Outcome store.Outcome
	Err     error
}

// Config configures a Controller.
type Config[T any] struct {
	// Slice is the shared list state. Required.
	Slice *store.ListSlice[T]

	// Guard handles Unauthorized errors. Optional.
	Guard SessionGuard

	Clock    clock.Clock
	Debounce time.Duration

	// ResetPageOnSearch moves to page 1 when the settled search
	// changes.
	ResetPageOnSearch bool

	Logger *slog.Logger
}

// Controller is the state machine of one list view.
type Controller[T any] struct {
	slice     *store.ListSlice[T]
	guard     SessionGuard
	logger    *slog.Logger
	resetPage bool
	clock     clock.Clock
	delay     time.Duration
	events    chan Event

	mu         sync.Mutex
	cursor     Cursor
	state      State
	lastErr    error
	dispatched uint64
	lifetime   context.Context
	cancel     context.CancelFunc
	mounted    bool
	debouncer  *debounce.Debouncer[string]
	inflight   sync.WaitGroup
}

// ErrPageOutOfRange is returned by SetPage for pages outside the list.
var ErrPageOutOfRange = errors.New("listview: page out of range")

// New returns an unmounted Controller.
func New[T any](config Config[T]) *Controller[T] {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	controller := &Controller[T]{
		slice:     config.Slice,
		guard:     config.Guard,
		logger:    config.Logger,
		resetPage: config.ResetPageOnSearch,
		clock:     config.Clock,
		delay:     config.Debounce,
		events:    make(chan Event, 64),
		cursor:    Cursor{Page: 1, Limit: PageSize},
	}
	return controller
}

// Mount starts the view's lifetime under parent and fetches page 1
// with an empty search.
func (c *Controller[T]) Mount(parent context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return
	}
	c.lifetime, c.cancel = context.WithCancel(parent)
	c.mounted = true
	c.debouncer = debounce.New(c.clock, c.delay, c.commitSearch)
	c.cursor = Cursor{Page: 1, Limit: PageSize}
	c.dispatchLocked()
}

// Unmount ends the lifetime: in-flight fetches are abandoned and the
// pending search commit is cancelled.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	c.cancel()
	debouncer := c.debouncer
	c.mu.Unlock()

	debouncer.Stop()
}

// Wait blocks until every dispatched fetch has returned. A
// SessionGuard must not call it.
func (c *Controller[T]) Wait() {
	c.inflight.Wait()
}

// SetSearch records typed text. The fetch waits for the text to settle.
func (c *Controller[T]) SetSearch(text string) {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.cursor.Search = text
	debouncer := c.debouncer
	c.mu.Unlock()
	debouncer.Set(text)
}

func (c *Controller[T]) commitSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	settled := strings.TrimSpace(text)
	if settled == c.cursor.EffectiveSearch {
		return
	}
	c.cursor.EffectiveSearch = settled
	if c.resetPage {
		c.cursor.Page = 1
	}
	c.dispatchLocked()
}

// SetPage moves to page and fetches it immediately with the search as
// currently typed. A pending search commit is cancelled; the page fetch
// carries the same text.
func (c *Controller[T]) SetPage(page int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return errors.New("listview: not mounted")
	}
	last := Paginate(c.cursor.Page, c.cursor.Limit, c.slice.Total()).LastPage()
	if page < 1 || page > last {
		return fmt.Errorf("%w: %d not in 1..%d", ErrPageOutOfRange, page, last)
	}
	// A commit already past its timer sees EffectiveSearch unchanged
	// and does nothing.
	c.debouncer.Cancel()
	c.cursor.EffectiveSearch = strings.TrimSpace(c.cursor.Search)
	c.cursor.Page = page
	c.dispatchLocked()
	return nil
}

// NextPage and PreviousPage step the cursor, ignoring the edges.
func (c *Controller[T]) NextPage() error     { return c.SetPage(c.Cursor().Page + 1) }
func (c *Controller[T]) PreviousPage() error { return c.SetPage(c.Cursor().Page - 1) }

// Refresh refetches the current cursor, as after a create or update.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		c.dispatchLocked()
	}
}

// ResetAfterDelete discards the search and page, then fetches page 1
// with an empty search.
func (c *Controller[T]) ResetAfterDelete() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	debouncer := c.debouncer
	c.mu.Unlock()
	debouncer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.cursor = Cursor{Page: 1, Limit: PageSize}
	c.dispatchLocked()
}

func (c *Controller[T]) dispatchLocked() {
	c.dispatched++
	id := c.dispatched
	cursor := c.cursor
	lifetime := c.lifetime
	c.state = Loading

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		outcome, err := c.slice.FetchPage(lifetime, cursor.Query())
		c.complete(id, cursor, outcome, err)
	}()
}

func (c *Controller[T]) complete(id uint64, cursor Cursor, outcome store.Outcome, err error) {
	if outcome == store.Failed && api.IsUnauthorized(err) && c.guard != nil {
		c.guard.HandleError(err)
	}

	c.mu.Lock()
	if !c.mounted || outcome == store.Abandoned {
		c.mu.Unlock()
		return
	}
	newest := id == c.dispatched
	if newest {
		switch outcome {
		case store.Failed:
			c.state = Errored
			c.lastErr = err
			c.logger.Warn("list fetch failed", "page", cursor.Page, "search", cursor.EffectiveSearch, "error", err)
		case store.Applied, store.Superseded:
			c.state = Loaded
			c.lastErr = nil
		}
	}
	event := Event{State: c.state, Cursor: cursor, Outcome: outcome, Err: err}
	c.mu.Unlock()

	select {
	case c.events <- event:
	default:
		c.logger.Debug("list event dropped", "page", cursor.Page)
	}
}

// Events delivers one Event per completed fetch while mounted.
func (c *Controller[T]) Events() <-chan Event { return c.events }

// State returns the load state and the error of the newest fetch.
func (c *Controller[T]) State() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastErr
}

// Cursor returns the current cursor.
func (c *Controller[T]) Cursor() Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Display derives the pagination readout from the cursor and the
// slice's current total.
func (c *Controller[T]) Display() Display {
	cursor := c.Cursor()
	return Paginate(cursor.Page, cursor.Limit, c.slice.Total())
}

// Page returns the current records with their pagination readout, both
// taken from one snapshot of the slice.
func (c *Controller[T]) Page() ([]T, Display) {
	cursor := c.Cursor()
	snapshot := c.slice.Snapshot()
	return snapshot.Items, Paginate(cursor.Page, cursor.Limit, snapshot.Total)
}

// Items returns the records of the shared slice.
func (c *Controller[T]) Items() []T { return c.slice.Items() }

// SearchPending reports whether typed text has not yet settled.
func (c *Controller[T]) SearchPending() bool {
	c.mu.Lock()
	debouncer := c.debouncer
	c.mu.Unlock()
	return debouncer != nil && debouncer.Pending()
}
