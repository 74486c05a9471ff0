// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package listview

import "fmt"

// Display is the derived pagination readout for one cursor position.
// It is computed on demand and never stored.
type Display struct {
	Page       int
	Start      int
	End        int
	Total      int
	TotalPages int
}

// Paginate derives the readout for page (1-based) of limit-sized pages
// over total matching records.
func Paginate(page, limit, total int) Display {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = PageSize
	}
	if total < 0 {
		total = 0
	}
	return Display{
		Page:       page,
		Start:      (page-1)*limit + 1,
		End:        min(page*limit, total),
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}

// Empty reports whether the page holds no records.
func (d Display) Empty() bool { return d.End < d.Start }

// Label renders "Showing a - b of n <noun>", or "0 items" for an
// empty page.
func (d Display) Label(noun string) string {
	if d.Empty() {
		return "0 items"
	}
	return fmt.Sprintf("Showing %d - %d of %d %s", d.Start, d.End, d.Total, noun)
}

// LastPage is the highest page a cursor may move to. A list with no
// records still has page 1.
func (d Display) LastPage() int {
	return max(d.TotalPages, 1)
}
