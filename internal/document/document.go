// Package document is the host side of the engine: something that can
// hand over its text and accept a replacement.
package document

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"lektor/internal/token"
)

// ErrTargetNotFound means the text to edit is no longer in the document.
// It only fails that one edit.
var ErrTargetNotFound = errors.New("edit target not found")

// Source reads the whole document.
type Source interface {
	ReadAllText(ctx context.Context) (string, error)
}

// Editor changes the document. Targets are literal, case-sensitive text;
// wholeWord requires that no token letter touches the match on either side.
type Editor interface {
	ReplaceFirstOccurrence(ctx context.Context, target, replacement string, wholeWord bool) error
	SelectAndScrollTo(ctx context.Context, target string, wholeWord bool) error
}

// Document is both.
type Document interface {
	Source
	Editor
}

// FindFirst returns the byte offset of the first occurrence of target in
// text, or -1.
func FindFirst(text, target string, wholeWord bool) int {
	if target == "" {
		return -1
	}
	for from := 0; from <= len(text)-len(target); {
		i := strings.Index(text[from:], target)
		if i < 0 {
			return -1
		}
		at := from + i
		if !wholeWord || isWholeWord(text, at, at+len(target)) {
			return at
		}
		_, size := utf8.DecodeRuneInString(text[at:])
		from = at + size
	}
	return -1
}

func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if token.IsTokenChar(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if token.IsTokenChar(r) {
			return false
		}
	}
	return true
}
