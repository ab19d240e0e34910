// Package lexer splits text into word tokens over the Slovenian alphabet.
package lexer

import (
	"lektor/internal/source"
	"lektor/internal/token"
)

// Tokenize returns every maximal run of word characters and apostrophes in
// text, left to right. Spans are attributed to file.
func Tokenize(file source.FileID, text string) []token.Token {
	out := make([]token.Token, 0, len(text)/6)
	c := NewCursor(file, text)
	for !c.EOF() {
		if n := c.BumpWhile(func(r rune) bool { return !token.IsTokenChar(r) }); n > 0 {
			continue
		}
		m := c.Mark()
		c.BumpWhile(token.IsTokenChar)
		span := c.SpanFrom(m)
		out = append(out, token.Token{Span: span, Text: text[span.Start:span.End]})
	}
	return out
}
