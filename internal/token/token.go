package token

import "lektor/internal/source"

// Token is a maximal run of word characters and apostrophes.
type Token struct {
	Span source.Span
	Text string
}

// Start is the byte offset of the token in the checked text.
func (t Token) Start() int { return int(t.Span.Start) }

// End is the byte offset just past the token.
func (t Token) End() int { return int(t.Span.End) }

// Len is the token length in runes.
func (t Token) Len() int { return len([]rune(t.Text)) }
