// Package sanitize removes text the checkers must never look at.
package sanitize

import (
	"regexp"
	"strings"

	"lektor/internal/source"
)

// URLs start with a scheme or with "www." and run to the next whitespace.
var urlRegex = regexp.MustCompile(`(?i)https?://[^\s\p{Zs}]+|www\.[^\s\p{Zs}]+`)

// URLFilterResult holds blanked text and where the URLs were.
type URLFilterResult struct {
	Text string        // same byte length as the input, URLs replaced by spaces
	URLs []source.Span // blanked byte ranges, ascending
	raw  string
}

// BlankURLs replaces every URL byte with a space. Lengths are kept so offsets
// found in the result are valid offsets into the original text.
func BlankURLs(text string) *URLFilterResult {
	locs := urlRegex.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return &URLFilterResult{Text: text, raw: text}
	}

	var b strings.Builder
	b.Grow(len(text))
	spans := make([]source.Span, 0, len(locs))
	prev := 0
	for _, loc := range locs {
		b.WriteString(text[prev:loc[0]])
		b.WriteString(strings.Repeat(" ", loc[1]-loc[0]))
		spans = append(spans, source.SpanOf(0, loc[0], loc[1]))
		prev = loc[1]
	}
	b.WriteString(text[prev:])

	return &URLFilterResult{Text: b.String(), URLs: spans, raw: text}
}

// Removed lists the blanked URLs for logging.
func (r *URLFilterResult) Removed() []string {
	out := make([]string, 0, len(r.URLs))
	for _, sp := range r.URLs {
		out = append(out, sp.Text(r.raw))
	}
	return out
}

// Touches reports whether span overlaps any blanked URL.
func (r *URLFilterResult) Touches(span source.Span) bool {
	for _, u := range r.URLs {
		if u.Start < span.End && span.Start < u.End {
			return true
		}
	}
	return false
}
