// Package pagination computes page-number windows and navigation targets.
package pagination

import "strconv"

// compactLimit is the largest page count rendered without ellipses.
const compactLimit = 5

// Entry is one slot in a page window: a page number or an ellipsis.
type Entry struct {
	Page     int
	Ellipsis bool
}

// Label renders the entry for display.
func (e Entry) Label() string {
	if e.Ellipsis {
		return "…"
	}
	return strconv.Itoa(e.Page)
}

// Window returns the compact page window for current out of total pages.
// The second result is false when total <= 1 and no navigation is needed.
// current is clamped into [1, total] first.
func Window(current, total int) ([]Entry, bool) {
	if total <= 1 {
		return nil, false
	}
	current = Clamp(current, total)

	if total <= compactLimit {
		out := make([]Entry, 0, total)
		for i := 1; i <= total; i++ {
			out = append(out, Entry{Page: i})
		}
		return out, true
	}

	out := make([]Entry, 0, 7)
	out = append(out, Entry{Page: 1})
	if current > 3 {
		out = append(out, Entry{Ellipsis: true})
	}
	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		out = append(out, Entry{Page: i})
	}
	if current < total-2 {
		out = append(out, Entry{Ellipsis: true})
	}
	out = append(out, Entry{Page: total})
	return out, true
}

// Target is a prev/next navigation button.
type Target struct {
	Page    int
	Enabled bool
}

// Nav holds the previous and next targets.
type Nav struct {
	Prev Target
	Next Target
}

// Controls returns prev/next targets. Out-of-range targets are disabled, never clamped.
func Controls(current, total int) Nav {
	prev, next := current-1, current+1
	return Nav{
		Prev: Target{Page: prev, Enabled: prev >= 1 && prev <= total},
		Next: Target{Page: next, Enabled: next >= 1 && next <= total},
	}
}

// Clamp forces target into [1, total]. With no pages, it returns 1.
func Clamp(target, total int) int {
	if total < 1 || target < 1 {
		return 1
	}
	if target > total {
		return total
	}
	return target
}

// Range returns the 1-based item range shown on page, for "Showing from-to of total".
// Both are zero when the page holds no items.
func Range(page, pageSize, total int) (from, to int) {
	if total <= 0 || pageSize <= 0 || page < 1 {
		return 0, 0
	}
	from = (page-1)*pageSize + 1
	if from > total {
		return 0, 0
	}
	return from, min(page*pageSize, total)
}
