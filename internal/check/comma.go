package check

import (
	"regexp"
	"strings"

	"lektor/internal/diag"
	"lektor/internal/source"
	"lektor/internal/token"
)

const (
	passPhrase = iota + 1
	passConjunction
	passCompound
)

type compoundRule struct {
	pair compoundPair
	re   *regexp.Regexp
}

// commaChecker holds the compiled comma tables.
type commaChecker struct {
	phraseRe  *regexp.Regexp
	conjRe    *regexp.Regexp
	compounds []compoundRule
	// protected are "word conj" pairs that end a known phrase, e.g. "kot da".
	protected map[string]struct{}
}

func newCommaChecker() *commaChecker {
	c := &commaChecker{
		phraseRe:  regexp.MustCompile(`(?i)(` + token.Word + `)\s+(` + alternation(commaPhrases) + `)\s+(` + token.Word + `)`),
		conjRe:    regexp.MustCompile(`(?i)(` + token.Word + `)\s+(` + alternation(commaConjunctions) + `)\s+(` + token.Word + `)`),
		protected: make(map[string]struct{}, len(commaPhrases)),
	}
	for _, p := range compoundPairs {
		c.compounds = append(c.compounds, compoundRule{
			pair: p,
			re: regexp.MustCompile(`(?i)(` + token.Word + `)(,?)\s+(` + phrasePattern(p.first) + `),\s+(` +
				phrasePattern(p.second) + `)\s+(` + token.Word + `)`),
		})
	}
	for _, phrase := range commaPhrases {
		words := strings.Fields(phrase)
		if len(words) >= 2 {
			c.protected[token.Fold(strings.Join(words[len(words)-2:], " "))] = struct{}{}
		}
	}
	return c
}

var commas = newCommaChecker()

// CheckCommas runs the three comma passes over text:
//  1. multi-word conjunctive phrases missing a comma before them;
//  2. single conjunctions missing a comma, unless the hit overlaps a
//     pass-1 span or is the tail of a known phrase;
//  3. a comma placed inside a compound conjunction ("zato, da") instead of
//     before it.
//
// The passes share one case-insensitive seen set. Every reported span is
// claimed; later passes skip hits overlapping an earlier pass's claims.
func CheckCommas(file source.FileID, text string) []diag.Issue {
	return checkCommas(file, text, nil)
}

func checkCommas(file source.FileID, text string, skip skipFunc) []diag.Issue {
	r := commaRun{
		checker: commas,
		file:    file,
		text:    text,
		seen:    newSeen(true),
		skip:    skip,
	}
	r.phrases()
	r.conjunctions()
	r.compounds()
	return r.out
}

type commaRun struct {
	checker *commaChecker
	file    source.FileID
	text    string
	seen    *seenSet
	skip    skipFunc
	claims  claimSet
	out     []diag.Issue
}

func (r *commaRun) report(code diag.Code, pass, start, end int, suggestion string) {
	r.claims.add(start, end, pass)
	r.out = append(r.out, diag.Issue{
		Code:        code,
		Span:        source.SpanOf(r.file, start, end),
		Matched:     r.text[start:end],
		Suggestions: []string{suggestion},
	})
}

// insertComma returns text[start:end] with a comma right after the leading word.
func (r *commaRun) insertComma(m match, start, end int) string {
	return r.text[start:m.end(1)] + "," + r.text[m.end(1):end]
}

func (r *commaRun) phrases() {
	scan(r.checker.phraseRe, r.text, func(m match) int {
		resume := m.end(2)
		start, end := m.start(0), m.end(3)
		if r.skip.covers(start, end) {
			return resume
		}
		if !r.seen.add(m.group(1) + " " + squash(m.group(2)) + " " + m.group(3)) {
			return resume
		}
		r.report(diag.CommaBeforePhrase, passPhrase, start, end, r.insertComma(m, start, end))
		return resume
	})
}

func (r *commaRun) conjunctions() {
	scan(r.checker.conjRe, r.text, func(m match) int {
		resume := m.end(2)
		start, end := m.start(0), m.end(3)
		if r.claims.overlapsEarlier(start, end, passConjunction) {
			return resume
		}
		before, conj := m.group(1), m.group(2)
		if _, ok := r.checker.protected[token.Fold(before+" "+conj)]; ok {
			return resume
		}
		if r.skip.covers(start, end) {
			return resume
		}
		if !r.seen.add(before + " " + conj + " " + m.group(3)) {
			return resume
		}
		r.report(diag.CommaBeforeConj, passConjunction, start, end, r.insertComma(m, start, end))
		return resume
	})
}

func (r *commaRun) compounds() {
	for _, rule := range r.checker.compounds {
		scan(rule.re, r.text, func(m match) int {
			resume := m.end(4)
			start, end := m.start(0), m.end(5)
			if r.claims.overlapsEarlier(start, end, passCompound) {
				return resume
			}
			if r.skip.covers(start, end) {
				return resume
			}
			key := m.group(1) + " " + squash(m.group(3)) + " " + m.group(4) + " " + m.group(5)
			if !r.seen.add(key) {
				return resume
			}
			// before + "," + ws + first + ws + second + ws + after
			inner := strings.TrimPrefix(m.between(3, 4), ",")
			suggestion := m.group(1) + "," + m.between(2, 3) + m.group(3) + inner + r.text[m.start(4):end]
			r.report(diag.CommaInsideCompound, passCompound, start, end, suggestion)
			return resume
		})
	}
}
