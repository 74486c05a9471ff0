// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package store

// Outcome reports what a fetch did to the slice.
type Outcome int

const (
	// Applied means the response replaced the slice state.
	Applied Outcome = iota

	// Superseded means a later-dispatched fetch completed first, so
	// this response was dropped.
	Superseded

	// Abandoned means the caller's context ended before the response
	// could be applied.
	Abandoned

	// Failed means the request failed; state is unchanged.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Superseded:
		return "superseded"
	case Abandoned:
		return "abandoned"
	default:
		return "failed"
	}
}
