package check

import "sort"

// claim is a byte range reported by a comma pass.
type claim struct {
	start, end int
	pass       int
}

// claimSet is the interval set the comma passes consult before accepting a
// match. Claims are kept sorted by start.
type claimSet struct {
	items []claim
}

func (c *claimSet) add(start, end, pass int) {
	i := sort.Search(len(c.items), func(i int) bool { return c.items[i].start > start })
	c.items = append(c.items, claim{})
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = claim{start: start, end: end, pass: pass}
}

// overlapsEarlier reports whether [start, end) shares a byte with a range
// claimed by a pass before pass.
func (c *claimSet) overlapsEarlier(start, end, pass int) bool {
	// Everything from index i on starts at or after end.
	i := sort.Search(len(c.items), func(i int) bool { return c.items[i].start >= end })
	for j := 0; j < i; j++ {
		cl := c.items[j]
		if cl.pass < pass && cl.end > start {
			return true
		}
	}
	return false
}
