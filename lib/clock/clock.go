// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock lets timer-driven code run against either the wall
// clock or a manually advanced fake. The debouncer, toast expiry, and
// token expiry checks take a Clock instead of calling the time package.
package clock

import "time"

// Clock is the subset of the time package that postadmin depends on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer
	// cancels the call if stopped first.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a scheduled callback created by AfterFunc.
type Timer struct {
	stop func() bool
}

// Stop cancels the callback. It reports false when the callback has
// already run or the timer was stopped before.
func (t *Timer) Stop() bool { return t.stop() }

// Real returns the wall clock.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (wallClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stop: timer.Stop}
}
