// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/FahadRazzaq1121/postapp/lib/api"
)

// Lister fetches one page of records. *api.PostClient and
// *api.UserClient satisfy Lister for their record types.
type Lister[T any] interface {
	List(ctx context.Context, query api.ListQuery) (api.Page[T], error)
}

// Snapshot is a consistent view of a ListSlice.
type Snapshot[T any] struct {
	Items []T
	Total int

	// Sequence identifies the fetch that produced this state. Zero
	// before the first applied fetch.
	Sequence uint64
}

// ListSlice is the shared state of one paginated resource.
type ListSlice[T any] struct {
	lister Lister[T]
	logger *slog.Logger

	mu     sync.Mutex
	items  []T
	total  int
	issued uint64

	// applied is the sequence of the fetch that produced items and
	// total. settled is the newest sequence that completed, applied or
	// failed; responses at or below it are stale.
	applied uint64
	settled uint64
}

// NewListSlice returns an empty slice backed by lister.
func NewListSlice[T any](lister Lister[T], logger *slog.Logger) *ListSlice[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListSlice[T]{lister: lister, logger: logger, items: []T{}}
}

// FetchPage issues exactly one List call and, if no later fetch has
// completed, replaces items and total together. A failed fetch leaves
// items and total unchanged but still settles: an older response that
// arrives after it is Superseded. Superseded and Abandoned fetches
// return a nil error.
func (s *ListSlice[T]) FetchPage(ctx context.Context, query api.ListQuery) (Outcome, error) {
	s.mu.Lock()
	s.issued++
	sequence := s.issued
	s.mu.Unlock()

	page, err := s.lister.List(ctx, query)

	if ctx.Err() != nil {
		s.logger.Debug("list fetch abandoned", "sequence", sequence, "page", query.Page)
		return Abandoned, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sequence <= s.settled {
		s.logger.Debug("list fetch superseded", "sequence", sequence, "settled", s.settled)
		return Superseded, nil
	}
	s.settled = sequence
	if err != nil {
		return Failed, err
	}

	items := page.Records
	if items == nil {
		items = []T{}
	}
	s.items = items
	s.total = page.TotalCount
	s.applied = sequence
	return Applied, nil
}

// Items returns the current page. Callers must not modify it.
func (s *ListSlice[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Total returns the server's count of matching records.
func (s *ListSlice[T]) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Snapshot returns items and total as one consistent pair.
func (s *ListSlice[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{Items: s.items, Total: s.total, Sequence: s.applied}
}
