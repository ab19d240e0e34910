package check

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"lektor/internal/diag"
	"lektor/internal/source"
	"lektor/internal/token"
)

// voicingChecker reports a preposition whose form does not agree with the
// first letter of the following word.
type voicingChecker struct {
	family voicingFamily
	re     *regexp.Regexp
}

func newVoicingChecker(f voicingFamily) *voicingChecker {
	// Explicit cases: (?i) would also fold "ſ" and the Kelvin sign.
	lower := f.onTrigger + f.otherwise
	letters := regexp.QuoteMeta(lower + strings.ToUpper(lower))
	return &voicingChecker{
		family: f,
		re:     regexp.MustCompile(`([` + letters + `])\s+(` + token.Word + `)`),
	}
}

var (
	szChecker = newVoicingChecker(voicingSZ)
	khChecker = newVoicingChecker(voicingKH)
)

// CheckVoicingSZ reports "s"/"z" used before the wrong sound.
func CheckVoicingSZ(file source.FileID, text string) []diag.Issue {
	return szChecker.check(file, text, nil)
}

// CheckVoicingKH reports "k"/"h" used before the wrong sound.
func CheckVoicingKH(file source.FileID, text string) []diag.Issue {
	return khChecker.check(file, text, nil)
}

// correct returns the lower-case preposition required before next.
func (v *voicingChecker) correct(next string) string {
	r, _ := utf8.DecodeRuneInString(token.Fold(next))
	if strings.ContainsRune(v.family.triggers, r) {
		return v.family.onTrigger
	}
	return v.family.otherwise
}

func (v *voicingChecker) check(file source.FileID, text string, skip skipFunc) []diag.Issue {
	seen := newSeen(true)
	var out []diag.Issue
	scan(v.re, text, func(m match) int {
		// The preposition must be a word of its own.
		if m.start(0) > 0 && gluesToWord(runeBefore(text, m.start(0))) {
			return reject
		}
		if skip.covers(m.start(0), m.end(0)) {
			return m.end(0)
		}
		prep, next := m.group(1), m.group(2)
		want := v.correct(next)
		if token.Fold(prep) == want {
			return m.end(0)
		}
		if !seen.add(prep + " " + next) {
			return m.end(0)
		}
		if token.IsAllUpper(prep) {
			want = token.Upper(want)
		}
		out = append(out, diag.Issue{
			Code:        v.family.code,
			Span:        source.SpanOf(file, m.start(0), m.end(0)),
			Matched:     m.group(0),
			Suggestions: []string{want + m.between(1, 2) + next},
		})
		return m.end(0)
	})
	return out
}

// gluesToWord reports whether r, standing right before the preposition,
// makes it part of a longer word (alphabet letters, digits, underscore).
func gluesToWord(r rune) bool {
	return token.IsWordChar(r) || unicode.IsDigit(r) || r == '_'
}
