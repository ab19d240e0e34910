package document

import (
	"context"
	"sync"
)

// Buffer is an in-memory Document. The selection is the byte range last
// passed to SelectAndScrollTo.
type Buffer struct {
	mu        sync.Mutex
	text      string
	selStart  int
	selEnd    int
	revisions int
}

func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

func (b *Buffer) ReadAllText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.Text(), nil
}

// Text returns the current content.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Revisions counts successful edits.
func (b *Buffer) Revisions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revisions
}

// Selection returns the selected byte range.
func (b *Buffer) Selection() (start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selStart, b.selEnd
}

func (b *Buffer) ReplaceFirstOccurrence(ctx context.Context, target, replacement string, wholeWord bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	at := FindFirst(b.text, target, wholeWord)
	if at < 0 {
		return ErrTargetNotFound
	}
	b.text = b.text[:at] + replacement + b.text[at+len(target):]
	b.selStart, b.selEnd = at, at+len(replacement)
	b.revisions++
	return nil
}

func (b *Buffer) SelectAndScrollTo(ctx context.Context, target string, wholeWord bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	at := FindFirst(b.text, target, wholeWord)
	if at < 0 {
		return ErrTargetNotFound
	}
	b.selStart, b.selEnd = at, at+len(target)
	return nil
}
