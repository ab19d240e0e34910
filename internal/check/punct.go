package check

import (
	"regexp"
	"strings"

	"lektor/internal/diag"
	"lektor/internal/source"
	"lektor/internal/token"
)

// punctRule is one entry of the punctuation spacing table.
type punctRule struct {
	code diag.Code
	re   *regexp.Regexp
	fix  func(m match) string
	// notFollowedBy rejects hits whose next rune satisfies it.
	notFollowedBy func(r rune) bool
}

var punctRules = []punctRule{
	{
		// "beseda ," -> "beseda,"
		code: diag.PunctSpaceBefore,
		re:   regexp.MustCompile(`(` + token.Preceding + `) +([,.;?!])`),
		fix:  func(m match) string { return m.group(1) + m.group(2) },
	},
	{
		// "beseda,beseda" -> "beseda, beseda"; digits never follow, so
		// "1,5" stays. The leading context is optional so " ,lep" is caught too.
		code: diag.PunctMissingSpace,
		re:   regexp.MustCompile(`([` + token.PrecedingClass + `]*)([,;])(` + token.Word + `)`),
		fix:  func(m match) string { return m.group(1) + m.group(2) + " " + m.group(3) },
	},
	{
		// "konec.Nov" -> "konec. Nov"
		code: diag.PunctMissingSentence,
		re:   regexp.MustCompile(`(` + token.Word + `)\.(` + token.UpperStart + `[` + token.WordClass + `]+)`),
		fix:  func(m match) string { return m.group(1) + ". " + m.group(2) },
	},
	{
		// "1939-1945" -> "1939–1945"
		code: diag.PunctRangeDash,
		re:   regexp.MustCompile(`(\d{2,})-(\d{2,})`),
		fix:  func(m match) string { return m.group(1) + "–" + m.group(2) },
	},
	{
		// "50%" -> "50 %"
		code: diag.PunctPercentSpacing,
		re:   regexp.MustCompile(`(\d)%`),
		fix:  func(m match) string { return m.group(1) + " %" },
	},
	{
		// "5kg" -> "5 kg", but "5kgs" and "3mio" are left alone.
		code:          diag.PunctUnitSpacing,
		re:            regexp.MustCompile(`(\d)(` + strings.Join(measureUnits, "|") + `)`),
		fix:           func(m match) string { return m.group(1) + " " + m.group(2) },
		notFollowedBy: token.IsWordChar,
	},
}

// CheckPunctuation runs the spacing rules in table order. All rules share
// one case-sensitive seen set keyed by the literal match; rules do not
// suppress each other's overlapping hits.
func CheckPunctuation(file source.FileID, text string) []diag.Issue {
	return checkPunctuation(file, text, nil)
}

func checkPunctuation(file source.FileID, text string, skip skipFunc) []diag.Issue {
	seen := newSeen(false)
	var out []diag.Issue
	for _, rule := range punctRules {
		scan(rule.re, text, func(m match) int {
			if rule.notFollowedBy != nil && m.end(0) < len(text) && rule.notFollowedBy(runeAt(text, m.end(0))) {
				return reject
			}
			if skip.covers(m.start(0), m.end(0)) {
				return m.end(0)
			}
			matched := m.group(0)
			if seen.add(matched) {
				out = append(out, diag.Issue{
					Code:        rule.code,
					Span:        source.SpanOf(file, m.start(0), m.end(0)),
					Matched:     matched,
					Suggestions: []string{rule.fix(m)},
				})
			}
			return m.end(0)
		})
	}
	return out
}
