// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/FahadRazzaq1121/postapp/lib/api"
)

// ProfileFetcher returns the authenticated user.
type ProfileFetcher interface {
	Me(ctx context.Context) (api.User, error)
}

// ProfileSlice holds the authenticated user's record, if loaded.
type ProfileSlice struct {
	fetcher ProfileFetcher

	mu      sync.Mutex
	profile *api.User
	issued  uint64
	settled uint64
}

// NewProfileSlice returns an empty ProfileSlice.
func NewProfileSlice(fetcher ProfileFetcher) *ProfileSlice {
	return &ProfileSlice{fetcher: fetcher}
}

// Fetch loads the profile. Ordering and cancellation follow
// ListSlice.FetchPage.
func (s *ProfileSlice) Fetch(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	s.issued++
	sequence := s.issued
	s.mu.Unlock()

	user, err := s.fetcher.Me(ctx)
	if ctx.Err() != nil {
		return Abandoned, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sequence <= s.settled {
		return Superseded, nil
	}
	s.settled = sequence
	if err != nil {
		return Failed, err
	}
	s.profile = &user
	return Applied, nil
}

// Profile returns the loaded profile and whether one is loaded.
func (s *ProfileSlice) Profile() (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return api.User{}, false
	}
	return *s.profile, true
}

// Role returns the loaded user's role, or "" before the profile loads.
func (s *ProfileSlice) Role() api.Role {
	profile, _ := s.Profile()
	return profile.Role
}

// Clear forgets the profile, as on logout. In-flight fetches issued
// before Clear are dropped.
func (s *ProfileSlice) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.settled = s.issued
}
