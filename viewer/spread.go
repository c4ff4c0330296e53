// Package viewer implements the two-page spread model and page image
// preparation for the on-screen music stand.
package viewer

// Spread tracks the current position within a title shown two pages at a
// time, like an open book. The left page index is always even, flipping moves
// by two pages and for an odd page count the last right-hand side shows a
// filler instead of music.
type Spread struct {
	total int
	pos   int
}

func NewSpread(total int) *Spread {
	if total < 0 {
		total = 0
	}
	return &Spread{total: total}
}

// PageCount returns the number of real pages.
func (s *Spread) PageCount() int {
	return s.total
}

// SpreadCount returns the number of distinct spreads.
func (s *Spread) SpreadCount() int {
	return (s.total + 1) / 2
}

// Pos returns the index of the left page of the current spread.
func (s *Spread) Pos() int {
	return s.pos
}

// Left returns the page index shown on the left, -1 when there are no pages.
func (s *Spread) Left() int {
	if s.total == 0 {
		return -1
	}
	return s.pos
}

// Right returns the page index shown on the right, -1 for the filler side.
func (s *Spread) Right() int {
	if s.pos+1 < s.total {
		return s.pos + 1
	}
	return -1
}

// Next flips forward one spread, reports whether the position changed.
func (s *Spread) Next() bool {
	if s.pos+2 >= s.total {
		return false
	}
	s.pos += 2
	return true
}

// Prev flips backward one spread, reports whether the position changed.
func (s *Spread) Prev() bool {
	if s.pos == 0 {
		return false
	}
	s.pos -= 2
	return true
}

// First jumps to the opening spread.
func (s *Spread) First() bool {
	if s.pos == 0 {
		return false
	}
	s.pos = 0
	return true
}

// Last jumps to the final spread.
func (s *Spread) Last() bool {
	last := 0
	if s.total > 0 {
		last = (s.total - 1) / 2 * 2
	}
	if s.pos == last {
		return false
	}
	s.pos = last
	return true
}

// Seek positions the spread so that the given page index is visible. Out of
// range values are clamped.
func (s *Spread) Seek(page int) {
	if page >= s.total {
		page = s.total - 1
	}
	if page < 0 {
		page = 0
	}
	s.pos = page / 2 * 2
}
