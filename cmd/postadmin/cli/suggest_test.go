// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"post", "", 4},
		{"post", "post", 0},
		{"pots", "post", 2},
		{"usr", "user", 1},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "login"}, {Name: "logout"}, {Name: "dashboard"}}
	if got := suggestCommand("logn", commands); got != "login" {
		t.Errorf("suggestCommand(logn) = %q, want login", got)
	}
	if got := suggestCommand("xyzzyplugh", commands); got != "" {
		t.Errorf("suggestCommand(xyzzyplugh) = %q, want none", got)
	}
}
