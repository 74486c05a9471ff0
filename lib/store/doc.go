// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package store holds the client-side copy of server lists and the
// current user's profile.
//
// A ListSlice keeps one page of records together with the server's
// count of all matching records. The pair is replaced as a unit by
// FetchPage; selectors read it without side effects.
//
// Concurrent fetches are ordered by sequence number, not arrival
// order: each FetchPage call takes a number when it is dispatched and
// its result is applied only if no later-dispatched call has already
// completed, successfully or not. A call whose context is cancelled before the response
// arrives is abandoned and never touches state.
package store
