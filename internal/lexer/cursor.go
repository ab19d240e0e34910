package lexer

import (
	"unicode/utf8"

	"lektor/internal/source"
)

// Cursor представляет собой позицию в тексте
type Cursor struct {
	Text string
	File source.FileID
	Off  int
}

// NewCursor creates a cursor at the start of text.
func NewCursor(file source.FileID, text string) Cursor {
	return Cursor{Text: text, File: file}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Text)
}

// Peek decodes the rune under the cursor without moving. At EOF it returns
// utf8.RuneError and size 0.
func (c *Cursor) Peek() (rune, int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.Text[c.Off:])
}

// Bump moves past the current rune and returns it.
func (c *Cursor) Bump() rune {
	r, size := c.Peek()
	c.Off += size
	return r
}

// BumpWhile consumes runes while pred holds and reports how many bytes it ate.
func (c *Cursor) BumpWhile(pred func(rune) bool) int {
	start := c.Off
	for !c.EOF() {
		r, size := c.Peek()
		if !pred(r) {
			break
		}
		c.Off += size
	}
	return c.Off - start
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.SpanOf(c.File, int(m), c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}
