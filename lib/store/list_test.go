// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/FahadRazzaq1121/postapp/lib/api"
)

// gatedLister answers each call only when the test releases it, so
// tests control the order in which responses arrive.
type gatedLister struct {
	mu      sync.Mutex
	calls   []api.ListQuery
	started chan api.ListQuery
	release map[int]chan result
}

type result struct {
	page api.Page[string]
	err  error
}

func newGatedLister() *gatedLister {
	return &gatedLister{started: make(chan api.ListQuery, 16), release: make(map[int]chan result)}
}

func (l *gatedLister) gate(page int) chan result {
	l.mu.Lock()
	defer l.mu.Unlock()
	channel, ok := l.release[page]
	if !ok {
		channel = make(chan result, 1)
		l.release[page] = channel
	}
	return channel
}

func (l *gatedLister) List(ctx context.Context, query api.ListQuery) (api.Page[string], error) {
	l.mu.Lock()
	l.calls = append(l.calls, query)
	l.mu.Unlock()
	gate := l.gate(query.Page)
	l.started <- query
	select {
	case answer := <-gate:
		return answer.page, answer.err
	case <-ctx.Done():
		return api.Page[string]{}, ctx.Err()
	}
}

func (l *gatedLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

type fixedLister struct {
	page  api.Page[string]
	err   error
	calls int
}

func (l *fixedLister) List(context.Context, api.ListQuery) (api.Page[string], error) {
	l.calls++
	return l.page, l.err
}

func TestInitialState(t *testing.T) {
	t.Parallel()
	slice := NewListSlice[string](&fixedLister{}, nil)
	if items := slice.Items(); items == nil || len(items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil", items)
	}
	if slice.Total() != 0 {
		t.Errorf("Total = %d", slice.Total())
	}
}

func TestFetchPageReplacesState(t *testing.T) {
	t.Parallel()
	lister := &fixedLister{page: api.Page[string]{Records: []string{"a", "b", "c", "d", "e"}, TotalCount: 42}}
	slice := NewListSlice[string](lister, nil)
	outcome, err := slice.FetchPage(context.Background(), api.ListQuery{Page: 1, Limit: 10})
	if err != nil || outcome != Applied {
		t.Fatalf("FetchPage = %v, %v", outcome, err)
	}
	if lister.calls != 1 {
		t.Errorf("lister called %d times, want 1", lister.calls)
	}
	snapshot := slice.Snapshot()
	if len(snapshot.Items) != 5 || snapshot.Total != 42 || snapshot.Sequence != 1 {
		t.Errorf("snapshot = %+v", snapshot)
	}

	// A later page with fewer records replaces rather than merges.
	lister.page = api.Page[string]{Records: []string{"z"}, TotalCount: 41}
	slice.FetchPage(context.Background(), api.ListQuery{Page: 5, Limit: 10})
	if items := slice.Items(); len(items) != 1 || items[0] != "z" || slice.Total() != 41 {
		t.Errorf("after second fetch: %v / %d", items, slice.Total())
	}
}

func TestFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	lister := &fixedLister{page: api.Page[string]{Records: []string{"a"}, TotalCount: 1}}
	slice := NewListSlice[string](lister, nil)
	slice.FetchPage(context.Background(), api.ListQuery{Page: 1, Limit: 10})

	failure := &api.RequestError{Kind: api.Transport, Message: "connection refused"}
	lister.err = failure
	outcome, err := slice.FetchPage(context.Background(), api.ListQuery{Page: 2, Limit: 10})
	if outcome != Failed || !errors.Is(err, failure) {
		t.Fatalf("FetchPage = %v, %v", outcome, err)
	}
	if lister.calls != 2 {
		t.Errorf("failed fetch was retried: %d calls", lister.calls)
	}
	if items := slice.Items(); len(items) != 1 || items[0] != "a" {
		t.Errorf("Items = %v after failure", items)
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	t.Parallel()
	lister := newGatedLister()
	slice := NewListSlice[string](lister, nil)
	ctx := context.Background()

	firstDone := make(chan Outcome, 1)
	go func() {
		outcome, _ := slice.FetchPage(ctx, api.ListQuery{Page: 1, Limit: 10})
		firstDone <- outcome
	}()
	<-lister.started

	secondDone := make(chan Outcome, 1)
	go func() {
		outcome, _ := slice.FetchPage(ctx, api.ListQuery{Page: 2, Limit: 10})
		secondDone <- outcome
	}()
	<-lister.started

	// The later request answers first.
	lister.gate(2) <- result{page: api.Page[string]{Records: []string{"page-2"}, TotalCount: 12}}
	if outcome := <-secondDone; outcome != Applied {
		t.Fatalf("second outcome = %v", outcome)
	}
	lister.gate(1) <- result{page: api.Page[string]{Records: []string{"page-1"}, TotalCount: 12}}
	if outcome := <-firstDone; outcome != Superseded {
		t.Fatalf("first outcome = %v, want Superseded", outcome)
	}

	if items := slice.Items(); len(items) != 1 || items[0] != "page-2" {
		t.Errorf("Items = %v, want the newest response", items)
	}
	if lister.callCount() != 2 {
		t.Errorf("calls = %d", lister.callCount())
	}
}

func TestCancelledFetchIsAbandoned(t *testing.T) {
	t.Parallel()
	lister := newGatedLister()
	slice := NewListSlice[string](lister, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan Outcome, 1)
	go func() {
		outcome, err := slice.FetchPage(ctx, api.ListQuery{Page: 1, Limit: 10})
		if err != nil {
			t.Errorf("abandoned fetch returned %v", err)
		}
		done <- outcome
	}()
	<-lister.started
	cancel()

	if outcome := <-done; outcome != Abandoned {
		t.Fatalf("outcome = %v, want Abandoned", outcome)
	}
	if slice.Snapshot().Sequence != 0 {
		t.Error("abandoned fetch was applied")
	}
}

func TestOlderResponseAfterNewerFailureIsDropped(t *testing.T) {
	t.Parallel()
	lister := newGatedLister()
	slice := NewListSlice[string](lister, nil)
	ctx := context.Background()

	firstDone := make(chan Outcome, 1)
	go func() {
		outcome, _ := slice.FetchPage(ctx, api.ListQuery{Page: 1, Limit: 10})
		firstDone <- outcome
	}()
	<-lister.started

	secondDone := make(chan Outcome, 1)
	go func() {
		outcome, _ := slice.FetchPage(ctx, api.ListQuery{Page: 2, Limit: 10})
		secondDone <- outcome
	}()
	<-lister.started

	// Page 2 fails, then the slow page 1 answers.
	lister.gate(2) <- result{err: &api.RequestError{Kind: api.Transport, Message: "connection reset"}}
	if outcome := <-secondDone; outcome != Failed {
		t.Fatalf("second outcome = %v, want Failed", outcome)
	}
	lister.gate(1) <- result{page: api.Page[string]{Records: []string{"page-1"}, TotalCount: 12}}
	if outcome := <-firstDone; outcome != Superseded {
		t.Fatalf("first outcome = %v, want Superseded", outcome)
	}

	snapshot := slice.Snapshot()
	if len(snapshot.Items) != 0 || snapshot.Total != 0 || snapshot.Sequence != 0 {
		t.Errorf("snapshot = %+v, want the state before either fetch", snapshot)
	}
}
