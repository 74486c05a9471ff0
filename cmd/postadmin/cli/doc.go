// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind postadmin: a tree of
// [Command] values dispatched by name, flags bound from tagged params
// structs, categorized [ToolError] values, and the shared setup that
// turns configuration into an API client and token cache.
package cli
