package check

import (
	"context"

	"lektor/internal/diag"
	"lektor/internal/lexer"
	"lektor/internal/source"
)

// SpellChecker is the affix lexicon seen by the engine.
type SpellChecker interface {
	Correct(word string) bool
	// Suggest returns replacements, best first.
	Suggest(word string) []string
}

// SpellProvider hands out a ready SpellChecker, loading it on first use.
// An error means the lexicon is unavailable and aborts the whole run.
type SpellProvider interface {
	SpellChecker(ctx context.Context) (SpellChecker, error)
}

// minSpellRunes: single letters are prepositions, initials or list markers.
const minSpellRunes = 2

// CheckSpelling reports every distinct unknown word. Words are compared
// case-insensitively for dedup, but the lexicon sees the original spelling
// so "ljubljana" can be wrong while "Ljubljana" is right.
func CheckSpelling(file source.FileID, text string, sc SpellChecker) []diag.Issue {
	return checkSpelling(file, text, sc, nil)
}

func checkSpelling(file source.FileID, text string, sc SpellChecker, skip skipFunc) []diag.Issue {
	seen := newSeen(true)
	var out []diag.Issue
	for _, tok := range lexer.Tokenize(file, text) {
		if tok.Len() < minSpellRunes || seen.has(tok.Text) {
			continue
		}
		if skip.covers(int(tok.Span.Start), int(tok.Span.End)) {
			continue
		}
		if sc.Correct(tok.Text) {
			continue
		}
		seen.add(tok.Text)
		out = append(out, diag.Issue{
			Code:        diag.SpellUnknownWord,
			Span:        tok.Span,
			Matched:     tok.Text,
			Suggestions: sc.Suggest(tok.Text),
		})
	}
	return out
}

// StaticProvider wraps an already loaded SpellChecker.
type StaticProvider struct {
	Checker SpellChecker
}

func (p StaticProvider) SpellChecker(context.Context) (SpellChecker, error) {
	return p.Checker, nil
}
