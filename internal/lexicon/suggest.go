package lexicon

import (
	"strings"
	"unicode/utf8"

	"lektor/internal/token"
)

// MaxSuggestions caps Suggest. Renderers show fewer.
const MaxSuggestions = 10

// edits2 is tried only for short words with no closer candidate.
const maxEdits2Runes = 8

// Suggest returns corrections for word, best first: REP table hits, case
// variants, single edits, a split into two words, then double edits.
// The order is deterministic.
func (l *Lexicon) Suggest(word string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c := &collector{lex: l, word: word, seen: map[string]struct{}{word: {}}}
	base := word
	if token.IsCapitalized(word) || token.IsAllUpper(word) {
		base = token.Fold(word)
	}

	l.suggestRep(c, base)
	c.tryCase()
	edits := l.edits1(base)
	for _, e := range edits {
		c.try(e)
	}
	l.suggestSplit(c, base)
	if len(c.out) == 0 && utf8.RuneCountInString(base) <= maxEdits2Runes {
		for _, e := range edits {
			for _, e2 := range shortEdits(e) {
				c.try(e2)
			}
		}
	}
	return c.out
}

// collector keeps accepted candidates in insertion order.
type collector struct {
	lex  *Lexicon
	word string
	seen map[string]struct{}
	out  []string
}

func (c *collector) full() bool { return len(c.out) >= MaxSuggestions }

func (c *collector) accept(s string) {
	if _, ok := c.seen[s]; ok || c.full() {
		return
	}
	c.seen[s] = struct{}{}
	c.out = append(c.out, s)
}

// try accepts cand shaped like the original word, or capitalised when
// the dictionary only knows it that way.
func (c *collector) try(cand string) {
	if c.full() || cand == "" {
		return
	}
	if strings.Contains(cand, " ") {
		c.trySplit(cand)
		return
	}
	shaped := token.MirrorCase(c.word, cand)
	switch {
	case c.lex.correct(shaped):
		c.accept(shaped)
	case c.lex.correct(cand):
		c.accept(cand)
	case c.lex.correct(token.Capitalize(cand)):
		c.accept(token.Capitalize(cand))
	}
}

func (c *collector) trySplit(cand string) {
	for _, part := range strings.Fields(cand) {
		if !c.lex.correct(part) {
			return
		}
	}
	c.accept(token.MirrorCase(c.word, cand))
}

// tryCase offers the word itself in other casings.
func (c *collector) tryCase() {
	for _, v := range []string{token.Capitalize(token.Fold(c.word)), token.Fold(c.word), token.Upper(c.word)} {
		if v != c.word && c.lex.correct(v) {
			c.accept(v)
		}
	}
}

// suggestRep applies every REP pair at every position. "_" in the
// replacement stands for a space.
func (l *Lexicon) suggestRep(c *collector, base string) {
	for _, rep := range l.aff.rep {
		from, to := rep[0], strings.ReplaceAll(rep[1], "_", " ")
		for i := 0; ; {
			j := strings.Index(base[i:], from)
			if j < 0 {
				break
			}
			at := i + j
			c.try(base[:at] + to + base[at+len(from):])
			i = at + 1
			if i >= len(base) {
				break
			}
		}
	}
}

// suggestSplit tries every two-word split.
func (l *Lexicon) suggestSplit(c *collector, base string) {
	for i := range base {
		if i == 0 {
			continue
		}
		c.trySplit(base[:i] + " " + base[i:])
	}
}

// edits1 lists swaps, replacements, deletions and insertions, in that
// order. Candidates are unchecked.
func (l *Lexicon) edits1(word string) []string {
	rs := []rune(word)
	try := []rune(l.tryChars())
	var out []string
	for i := 0; i+1 < len(rs); i++ {
		if rs[i] == rs[i+1] {
			continue
		}
		out = append(out, string(rs[:i])+string(rs[i+1])+string(rs[i])+string(rs[i+2:]))
	}
	for i := range rs {
		for _, t := range try {
			if t != rs[i] {
				out = append(out, string(rs[:i])+string(t)+string(rs[i+1:]))
			}
		}
	}
	for i := range rs {
		out = append(out, string(rs[:i])+string(rs[i+1:]))
	}
	for i := 0; i <= len(rs); i++ {
		for _, t := range try {
			out = append(out, string(rs[:i])+string(t)+string(rs[i:]))
		}
	}
	return out
}

// shortEdits are the cheap second-level edits: swaps and deletions.
func shortEdits(word string) []string {
	rs := []rune(word)
	var out []string
	for i := 0; i+1 < len(rs); i++ {
		out = append(out, string(rs[:i])+string(rs[i+1])+string(rs[i])+string(rs[i+2:]))
	}
	for i := range rs {
		out = append(out, string(rs[:i])+string(rs[i+1:]))
	}
	return out
}
