package token

import "strings"

// Character classes shared by every rule table. They are regexp class
// bodies (without brackets) so the tables can splice them into patterns.
const (
	// WordClass is the Latin alphabet plus the Slovenian and neighbouring
	// diacritic letters, in both cases.
	WordClass = `a-zA-ZčćđžšČĆĐŽŠ`
	// UpperClass are the letters that may start a capitalised word.
	UpperClass = `A-ZČĆĐŽŠ`
	// PrecedingClass may stand right before a punctuation mark: word
	// letters, closing brackets and closing quotes.
	PrecedingClass = WordClass + `)\]»"'`
)

// Ready-made regexp fragments.
const (
	Word       = `[` + WordClass + `]+`
	UpperStart = `[` + UpperClass + `]`
	Preceding  = `[` + PrecedingClass + `]+`
)

const extraLetters = "čćđžšČĆĐŽŠ"

// IsWordChar reports whether r belongs to WordClass.
func IsWordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r < 0x80:
		return false
	default:
		return strings.ContainsRune(extraLetters, r)
	}
}

// IsUpperStart reports whether r belongs to UpperClass.
func IsUpperStart(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		return true
	}
	return strings.ContainsRune("ČĆĐŽŠ", r)
}

// IsPrecedingChar reports whether r may stand directly before punctuation.
func IsPrecedingChar(r rune) bool {
	if IsWordChar(r) {
		return true
	}
	switch r {
	case ')', ']', '»', '"', '\'':
		return true
	}
	return false
}

// IsTokenChar reports whether r continues a word token.
func IsTokenChar(r rune) bool {
	return r == '\'' || IsWordChar(r)
}
