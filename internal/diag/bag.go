package diag

import (
	"sort"
)

type Bag struct {
	items []Issue
	max   int
}

// NewBag creates a bag holding at most max issues; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 || capacity > 256 {
		capacity = 16
	}
	return &Bag{
		items: make([]Issue, 0, capacity),
		max:   max,
	}
}

// Add добавляет issue, учитывая лимит.
// Возвращает false, если issue не добавлен (достигнут лимит).
func (b *Bag) Add(is Issue) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, is)
	return true
}

// AddAll adds issues in order until the limit is hit and returns how many fit.
func (b *Bag) AddAll(issues []Issue) int {
	n := 0
	for _, is := range issues {
		if !b.Add(is) {
			break
		}
		n++
	}
	return n
}

// HasErrors возвращает true, если есть хотя бы один issue с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity() >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы один issue с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity() >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Issue {
	return b.items
}

// Counts splits the bag into grammar and spelling totals.
func (b *Bag) Counts() (grammar, spelling int) {
	for i := range b.items {
		if b.items[i].Category().IsGrammar() {
			grammar++
		} else {
			spelling++
		}
	}
	return grammar, spelling
}

// Merge объединяет issues из другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders issues by file, start, end, severity (desc) and code. Only
// output that mixes several files needs it; a single run is already in
// checker priority order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Span.File != dj.Span.File {
			return di.Span.File < dj.Span.File
		}
		if di.Span.Start != dj.Span.Start {
			return di.Span.Start < dj.Span.Start
		}
		if di.Span.End != dj.Span.End {
			return di.Span.End < dj.Span.End
		}
		if di.Severity() != dj.Severity() {
			return di.Severity() > dj.Severity()
		}
		return di.Code < dj.Code
	})
}

// Filter keeps only the issues for which keep returns true.
func (b *Bag) Filter(keep func(Issue) bool) {
	out := b.items[:0]
	for _, is := range b.items {
		if keep(is) {
			out = append(out, is)
		}
	}
	b.items = out
}
