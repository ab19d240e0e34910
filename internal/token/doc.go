// Package token defines the Slovenian alphabet the checkers work with and the
// word tokens produced by the lexer.
// Invariants:
//   - Token.Text is a slice of the checked text (no copies).
//   - Token.Span matches Text exactly (Start..End, byte offsets).
//   - A token is a maximal run of alphabet letters and apostrophes; digits,
//     hyphens and letters outside the alphabet (ü, ö, ß, ...) split tokens.
package token
