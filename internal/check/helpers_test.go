package check

import (
	"strings"
	"testing"

	"lektor/internal/diag"
	"lektor/internal/testkit"
)

// want is the expected shape of one issue.
type want struct {
	code    diag.Code
	matched string
	suggest string
}

func assertIssues(t *testing.T, text string, got []diag.Issue, wants []want) {
	t.Helper()
	if err := testkit.CheckIssueInvariants(text, got); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	if len(got) != len(wants) {
		t.Fatalf("got %d issues, want %d:\n%s", len(got), len(wants), dumpIssues(got))
	}
	for i, w := range wants {
		is := got[i]
		if is.Code != w.code || is.Matched != w.matched {
			t.Errorf("issue %d = %s %q, want %s %q", i, is.Code.ID(), is.Matched, w.code.ID(), w.matched)
			continue
		}
		if best, _ := is.Best(); best != w.suggest {
			t.Errorf("issue %d suggestion = %q, want %q", i, best, w.suggest)
		}
	}
}

func dumpIssues(issues []diag.Issue) string {
	var b strings.Builder
	for _, is := range issues {
		b.WriteString("  ")
		b.WriteString(is.Code.ID())
		b.WriteString(" ")
		b.WriteString(is.Span.String())
		b.WriteString(" ")
		b.WriteString(is.Matched)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(is.Suggestions, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// fakeLexicon knows a fixed, case-sensitive word list.
type fakeLexicon struct {
	words map[string]bool
	sugg  map[string][]string
}

func newFakeLexicon(words ...string) *fakeLexicon {
	l := &fakeLexicon{words: make(map[string]bool), sugg: make(map[string][]string)}
	for _, w := range words {
		l.words[w] = true
	}
	return l
}

func (l *fakeLexicon) Correct(word string) bool     { return l.words[word] }
func (l *fakeLexicon) Suggest(word string) []string { return l.sugg[word] }
