// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package listview

import "testing"

func TestPaginate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		page, total            int
		start, end, totalPages int
		label                  string
	}{
		{1, 42, 1, 10, 5, "Showing 1 - 10 of 42 posts"},
		{5, 42, 41, 42, 5, "Showing 41 - 42 of 42 posts"},
		{6, 42, 51, 42, 5, "0 items"},
		{1, 0, 1, 0, 0, "0 items"},
		{1, 10, 1, 10, 1, "Showing 1 - 10 of 10 posts"},
		{2, 11, 11, 11, 2, "Showing 11 - 11 of 11 posts"},
	}
	for _, test := range tests {
		display := Paginate(test.page, PageSize, test.total)
		if display.Start != test.start || display.End != test.end || display.TotalPages != test.totalPages {
			t.Errorf("Paginate(%d, 10, %d) = %+v", test.page, test.total, display)
		}
		if display.End < display.Start-1 {
			t.Errorf("Paginate(%d, 10, %d): end %d below start-1", test.page, test.total, display.End)
		}
		if got := display.Label("posts"); got != test.label {
			t.Errorf("Label(page %d, total %d) = %q, want %q", test.page, test.total, got, test.label)
		}
	}
}

func TestTotalPagesIsCeiling(t *testing.T) {
	t.Parallel()
	for total := 0; total <= 105; total++ {
		want := total / PageSize
		if total%PageSize != 0 {
			want++
		}
		if got := Paginate(1, PageSize, total).TotalPages; got != want {
			t.Fatalf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
	if Paginate(1, PageSize, 0).LastPage() != 1 {
		t.Error("an empty list must still allow page 1")
	}
}
