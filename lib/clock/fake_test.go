// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestFakeAfterFuncFiresAtDeadline(t *testing.T) {
	t.Parallel()
	fake := Fake(epoch)
	fired := 0
	fake.AfterFunc(500*time.Millisecond, func() { fired++ })

	fake.Advance(499 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired before deadline: %d", fired)
	}
	fake.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	fake.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot timer fired again: %d", fired)
	}
}

func TestFakeStopCancelsCallback(t *testing.T) {
	t.Parallel()
	fake := Fake(epoch)
	fired := false
	timer := fake.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop on a pending timer returned false")
	}
	if timer.Stop() {
		t.Fatal("second Stop returned true")
	}
	if fake.PendingCount() != 0 {
		t.Fatalf("PendingCount = %d after Stop", fake.PendingCount())
	}
	fake.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()
	fake := Fake(epoch)
	var order []string
	fake.AfterFunc(3*time.Second, func() { order = append(order, "late") })
	fake.AfterFunc(time.Second, func() { order = append(order, "early") })

	fake.Advance(5 * time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Fatalf("order = %v", order)
	}
}

func TestFakeAfterDeliversOnChannel(t *testing.T) {
	t.Parallel()
	fake := Fake(epoch)
	channel := fake.After(time.Minute)

	done := make(chan time.Time)
	go func() { done <- <-channel }()

	fake.WaitForTimers(1)
	fake.Advance(time.Minute)
	if got := <-done; !got.Equal(epoch.Add(time.Minute)) {
		t.Fatalf("After delivered %v", got)
	}
	if fake.Now() != epoch.Add(time.Minute) {
		t.Fatalf("Now = %v", fake.Now())
	}
}
