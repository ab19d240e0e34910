package lexicon

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"unicode/utf8"

	"lektor/internal/token"
)

// Lexicon is a loaded affix dictionary. It is safe for concurrent use;
// words added after loading are visible to later checks.
type Lexicon struct {
	mu     sync.RWMutex
	aff    *affixFile
	stems  map[string][]string
	banned map[string]struct{}
	// affixes indexed by the text they add.
	sfx map[string][]*affix
	pfx map[string][]*affix
}

// Load parses an affix file and a word list.
func Load(aff, dic io.Reader) (*Lexicon, error) {
	rawAff, err := io.ReadAll(aff)
	if err != nil {
		return nil, fmt.Errorf("read aff: %w", err)
	}
	rawDic, err := io.ReadAll(dic)
	if err != nil {
		return nil, fmt.Errorf("read dic: %w", err)
	}
	enc := sniffEncoding(rawAff)
	affText, err := decode(rawAff, enc)
	if err != nil {
		return nil, fmt.Errorf("aff: %w", err)
	}
	af, err := parseAff(affText)
	if err != nil {
		return nil, fmt.Errorf("aff: %w", err)
	}
	dicText, err := decode(rawDic, enc)
	if err != nil {
		return nil, fmt.Errorf("dic: %w", err)
	}
	stems, err := parseDic(dicText, af)
	if err != nil {
		return nil, fmt.Errorf("dic: %w", err)
	}
	return newLexicon(af, stems), nil
}

// LoadFiles opens and parses affPath and dicPath.
func LoadFiles(affPath, dicPath string) (*Lexicon, error) {
	aff, err := os.Open(affPath)
	if err != nil {
		return nil, err
	}
	defer aff.Close()
	dic, err := os.Open(dicPath)
	if err != nil {
		return nil, err
	}
	defer dic.Close()
	return Load(aff, dic)
}

func newLexicon(af *affixFile, stems map[string][]string) *Lexicon {
	l := &Lexicon{
		aff:    af,
		stems:  stems,
		banned: make(map[string]struct{}),
		sfx:    make(map[string][]*affix),
		pfx:    make(map[string][]*affix),
	}
	for _, ax := range af.suffixes {
		l.sfx[ax.add] = append(l.sfx[ax.add], ax)
	}
	for _, ax := range af.prefixes {
		l.pfx[ax.add] = append(l.pfx[ax.add], ax)
	}
	return l
}

// Len returns the number of stems.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.stems)
}

// Correct reports whether word is spelled correctly. A capitalised or
// all-caps word is also accepted when its lower-case form is known.
func (l *Lexicon) Correct(word string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.correct(word)
}

func (l *Lexicon) correct(word string) bool {
	if word == "" {
		return false
	}
	if _, ok := l.banned[word]; ok {
		return false
	}
	if l.lookup(word) {
		return true
	}
	switch {
	case utf8.RuneCountInString(word) > 1 && token.IsAllUpper(word):
		lower := token.Fold(word)
		return l.lookup(lower) || l.lookup(token.Capitalize(lower))
	case token.IsCapitalized(word):
		return l.lookup(token.Fold(word))
	}
	return false
}

// AddWord makes word known without affixes.
func (l *Lexicon) AddWord(word string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.banned, word)
	if _, ok := l.stems[word]; !ok {
		l.stems[word] = nil
	}
}

// AddLike makes word known with the affix flags of model, so it inflects
// the same way. An unknown model adds word alone.
func (l *Lexicon) AddLike(word, model string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.banned, word)
	l.stems[word] = append(l.stems[word], l.stems[model]...)
}

// Forbid marks word as wrong even if the dictionary derives it.
func (l *Lexicon) Forbid(word string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.banned[word] = struct{}{}
}

func (l *Lexicon) hasFlag(flags []string, flag string) bool {
	return flag != "" && slices.Contains(flags, flag)
}

// stemHas reports whether stem exists with flag and is not forbidden.
func (l *Lexicon) stemHas(stem, flag string) bool {
	flags, ok := l.stems[stem]
	return ok && l.hasFlag(flags, flag) && !l.hasFlag(flags, l.aff.forbidden)
}

// lookup checks word as a stem and then through affix stripping.
func (l *Lexicon) lookup(word string) bool {
	if flags, ok := l.stems[word]; ok {
		if l.hasFlag(flags, l.aff.forbidden) {
			return false
		}
		if !l.hasFlag(flags, l.aff.needAffix) {
			return true
		}
	}
	return l.suffixed(word) || l.prefixed(word, "")
}

// usable reports whether the affixed form may stand alone.
func (l *Lexicon) usable(ax *affix) bool {
	return !l.hasFlag(ax.cont, l.aff.needAffix)
}

// suffixed strips one suffix (plus an optional inner suffix or a cross
// product prefix) and looks the stem up.
func (l *Lexicon) suffixed(word string) bool {
	for i := len(word); i >= 0; i-- {
		if i < len(word) && !utf8.RuneStart(word[i]) {
			continue
		}
		for _, ax := range l.sfx[word[i:]] {
			base := word[:i] + ax.strip
			if base == "" || !ax.cond.MatchString(base) {
				continue
			}
			if l.usable(ax) && l.stemHas(base, ax.flag) {
				return true
			}
			if l.innerSuffixed(base, ax.flag) {
				return true
			}
			if ax.cross && l.prefixed(base, ax.flag) {
				return true
			}
		}
	}
	return false
}

// innerSuffixed handles twofold suffixes: base must itself be a stem plus
// a suffix whose continuation flags allow outer.
func (l *Lexicon) innerSuffixed(base, outer string) bool {
	for i := len(base); i >= 0; i-- {
		if i < len(base) && !utf8.RuneStart(base[i]) {
			continue
		}
		for _, ax := range l.sfx[base[i:]] {
			if !l.hasFlag(ax.cont, outer) {
				continue
			}
			stem := base[:i] + ax.strip
			if stem != "" && ax.cond.MatchString(stem) && l.stemHas(stem, ax.flag) {
				return true
			}
		}
	}
	return false
}

// prefixed strips one prefix. When withSuffix is set the word already lost
// a cross product suffix and the stem must carry both flags.
func (l *Lexicon) prefixed(word, withSuffix string) bool {
	for i := 0; i <= len(word); i++ {
		if i < len(word) && !utf8.RuneStart(word[i]) {
			continue
		}
		for _, ax := range l.pfx[word[:i]] {
			if withSuffix != "" && !ax.cross {
				continue
			}
			base := ax.strip + word[i:]
			if base == "" || !ax.cond.MatchString(base) {
				continue
			}
			if !l.stemHas(base, ax.flag) {
				continue
			}
			if withSuffix == "" {
				if l.usable(ax) {
					return true
				}
				continue
			}
			if l.hasFlag(l.stems[base], withSuffix) {
				return true
			}
		}
	}
	return false
}

// tryChars is the TRY alphabet, or the Slovenian letters when unset.
func (l *Lexicon) tryChars() string {
	if l.aff.try != "" {
		return l.aff.try
	}
	return "aeioulrnstvkdjpmbzgčšžcfh"
}

func (l *Lexicon) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fmt.Sprintf("lexicon(%d stems, %d prefixes, %d suffixes)", len(l.stems), len(l.aff.prefixes), len(l.aff.suffixes))
}
