package check

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// match is one regexp hit with absolute offsets into text.
type match struct {
	loc  []int
	text string
}

func (m match) start(i int) int { return m.loc[2*i] }
func (m match) end(i int) int   { return m.loc[2*i+1] }

// group returns capture i, "" when it did not participate.
func (m match) group(i int) string {
	if m.loc[2*i] < 0 {
		return ""
	}
	return m.text[m.loc[2*i]:m.loc[2*i+1]]
}

// between returns the text from the end of capture i to the start of capture j.
func (m match) between(i, j int) string {
	return m.text[m.end(i):m.start(j)]
}

// skipFunc reports byte ranges whose hits are ignored before they reach a
// seen set, so a blanked URL never uses up the key of a real defect.
type skipFunc func(start, end int) bool

func (s skipFunc) covers(start, end int) bool {
	return s != nil && s(start, end)
}

// reject tells scan to drop the hit and retry one rune after its start.
const reject = -1

// scan walks re over text the way a global regexp with lookahead would:
// visit returns the offset the next search starts from, or reject.
// Searching a suffix loses no context because no rule pattern looks behind
// its first byte.
func scan(re *regexp.Regexp, text string, visit func(m match) int) {
	pos := 0
	for pos <= len(text) {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}
		next := visit(match{loc: loc, text: text})
		if next <= loc[0] {
			_, size := utf8.DecodeRuneInString(text[loc[0]:])
			if size == 0 {
				return
			}
			next = loc[0] + size
		}
		pos = next
	}
}

// runeBefore returns the rune ending at off, or utf8.RuneError at the start.
func runeBefore(text string, off int) rune {
	r, _ := utf8.DecodeLastRuneInString(text[:off])
	return r
}

// runeAt returns the rune starting at off, or utf8.RuneError at the end.
func runeAt(text string, off int) rune {
	r, _ := utf8.DecodeRuneInString(text[off:])
	return r
}

// squash collapses whitespace runs to single spaces.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// phrasePattern turns "kljub temu" into `kljub\s+temu`.
func phrasePattern(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}

// alternation joins phrases into one group body, keeping table order.
func alternation(phrases []string) string {
	parts := make([]string, len(phrases))
	for i, p := range phrases {
		parts[i] = phrasePattern(p)
	}
	return strings.Join(parts, "|")
}
