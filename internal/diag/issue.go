package diag

import (
	"fmt"
	"strings"

	"lektor/internal/source"
)

// MaxShownSuggestions caps how many suggestions renderers show per issue.
const MaxShownSuggestions = 6

// Issue is one candidate correction.
type Issue struct {
	Code        Code
	Span        source.Span
	Matched     string
	Suggestions []string
}

func (i Issue) Category() Category { return i.Code.Category() }

// IsPhraseLevel is false only for spelling issues.
func (i Issue) IsPhraseLevel() bool { return i.Code.Category().IsPhraseLevel() }

func (i Issue) Severity() Severity { return i.Code.Severity() }

func (i Issue) Applicability() Applicability { return i.Code.Applicability() }

// ID is stable for one version of a text: code, file and start offset.
func (i Issue) ID() string {
	return fmt.Sprintf("%s-%d-%d", i.Code.ID(), i.Span.File, i.Span.Start)
}

// Best returns the first suggestion, if any.
func (i Issue) Best() (string, bool) {
	if len(i.Suggestions) == 0 {
		return "", false
	}
	return i.Suggestions[0], true
}

// Shown returns the suggestions a renderer should list.
func (i Issue) Shown() []string {
	if len(i.Suggestions) > MaxShownSuggestions {
		return i.Suggestions[:MaxShownSuggestions]
	}
	return i.Suggestions
}

// Message is a one-line description: rule title plus the proposed text.
func (i Issue) Message() string {
	best, ok := i.Best()
	switch {
	case !ok:
		return fmt.Sprintf("%s: %q (ni predlogov)", i.Code.Title(), i.Matched)
	case i.IsPhraseLevel():
		return fmt.Sprintf("%s: %q → %q", i.Code.Title(), i.Matched, best)
	default:
		return fmt.Sprintf("%s: %q (predlogi: %s)", i.Code.Title(), i.Matched, strings.Join(i.Shown(), ", "))
	}
}
