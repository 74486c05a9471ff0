// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package debounce delays a value until it has stopped changing.
package debounce

import (
	"sync"
	"time"

	"github.com/FahadRazzaq1121/postapp/lib/clock"
)

// Debouncer commits the last value passed to Set once delay has passed
// without another Set. Each Set cancels the pending timer. After Stop,
// no commit runs and later Sets are ignored.
type Debouncer[T any] struct {
	clock  clock.Clock
	delay  time.Duration
	commit func(T)

	mu         sync.Mutex
	timer      *clock.Timer
	generation uint64
	stopped    bool
}

// New returns a Debouncer that calls commit on the clock's timer
// goroutine (synchronously inside Advance for a fake clock).
func New[T any](c clock.Clock, delay time.Duration, commit func(T)) *Debouncer[T] {
	return &Debouncer[T]{clock: c, delay: delay, commit: commit}
}

// Set replaces the pending value and restarts the delay.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	generation := d.generation
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(generation, value) })
}

// fire commits value unless a later Set or Stop superseded it. The
// generation check covers a timer that fired while Set was stopping it.
func (d *Debouncer[T]) fire(generation uint64, value T) {
	d.mu.Lock()
	if d.stopped || generation != d.generation {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.commit(value)
}

// Cancel drops the pending value without stopping the Debouncer.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a commit is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending commit and disables the Debouncer.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
