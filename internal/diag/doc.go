// Package diag defines the issue model shared by the checkers, the fix
// engine and every renderer.
//
// An Issue is one candidate correction: the literal text that was matched,
// where it sits in the checked file, the rule (Code) that produced it and a
// ranked list of replacements. Codes are grouped into categories:
//
//	SPL1xxx  Spelling      word-level, whole-word replacement
//	PRP2xxx  Preposition   s/z and k/h voicing
//	PUN3xxx  Punctuation   spacing around punctuation marks, ranges, units
//	COM4xxx  Comma         comma placement before conjunctions
//
// Everything except Spelling is phrase-level: the matched text spans more
// than one word (or a word and its punctuation) and is replaced as a phrase.
//
// Invariants:
//   - Issue.Matched is never empty and equals the checked text sliced by
//     Issue.Span.
//   - Suggestions are ordered best first. The core never truncates them;
//     renderers cap what they show (see MaxShownSuggestions).
//   - Severity and Applicability are derived from the Code, never stored.
//
// Bag collects issues of one run or one file. It keeps the order the
// checkers produced them in; Sort is only used for multi-file output.
package diag
