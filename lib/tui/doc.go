// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the terminal building blocks shared by postadmin's
// interactive screens: the color theme, ANSI-aware overlay splicing for
// modals and dropdowns, the scrollbar gutter, and fuzzy match scoring
// used to highlight search hits in list rows.
//
// Nothing here knows about posts or users. The adminui package owns
// the screens and composes these pieces.
package tui
