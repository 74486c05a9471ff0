// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package adminui is the interactive terminal front end of postadmin,
// built on bubbletea.
//
// The Model renders whatever the lower layers hold: the list view
// controllers for posts and users, the profile slice, and the
// dashboard history. It never talks to the network on the event loop.
// Fetches run inside the listview controllers, and logins and
// mutations run as tea.Cmd goroutines that report back with messages.
//
// Navigation follows the dashboard.History: the Model reacts to
// location changes (a login, a tab switch, an authorization failure
// anywhere) by reading the current location and mounting the matching
// screen. Wire the history with NavigationHistory so those changes
// reach the event loop.
package adminui
