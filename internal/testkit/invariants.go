// Package testkit holds invariant checks shared by tests of several packages.
package testkit

import (
	"fmt"
	"strings"

	"lektor/internal/diag"
	"lektor/internal/token"
)

// CheckIssueInvariants verifies issues produced from text:
// 1) Matched is non-empty and equals text sliced by Span;
// 2) within a category no two issues share Matched (punctuation and
// spelling compare literally, prepositions and commas case-insensitively
// with whitespace squashed);
// 3) comma issues from different passes never overlap.
func CheckIssueInvariants(text string, issues []diag.Issue) error {
	seen := make(map[diag.Category]map[string]struct{})
	for i, is := range issues {
		if is.Matched == "" {
			return fmt.Errorf("issue %d (%s) has empty match", i, is.Code.ID())
		}
		if int(is.Span.End) > len(text) || is.Span.Start >= is.Span.End {
			return fmt.Errorf("issue %d (%s) span %v outside text of %d bytes", i, is.Code.ID(), is.Span, len(text))
		}
		if got := text[is.Span.Start:is.Span.End]; got != is.Matched {
			return fmt.Errorf("issue %d (%s) matched %q but span %v holds %q", i, is.Code.ID(), is.Matched, is.Span, got)
		}

		key := is.Matched
		switch is.Category() {
		case diag.CatPreposition, diag.CatComma:
			key = token.Fold(strings.Join(strings.Fields(key), " "))
		}
		if seen[is.Category()] == nil {
			seen[is.Category()] = make(map[string]struct{})
		}
		if _, dup := seen[is.Category()][key]; dup {
			return fmt.Errorf("issue %d (%s) duplicates %q", i, is.Code.ID(), is.Matched)
		}
		seen[is.Category()][key] = struct{}{}
	}

	for i, a := range issues {
		if a.Category() != diag.CatComma {
			continue
		}
		for _, b := range issues[i+1:] {
			if b.Category() == diag.CatComma && a.Code != b.Code && a.Span.Overlaps(b.Span) {
				return fmt.Errorf("comma issues %q (%s) and %q (%s) overlap", a.Matched, a.Code.ID(), b.Matched, b.Code.ID())
			}
		}
	}
	return nil
}
