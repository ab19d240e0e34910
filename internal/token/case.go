package token

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers are stateful, so every call builds its own.

// Fold lowercases s with Slovenian rules. Used for every case-insensitive key.
func Fold(s string) string {
	return cases.Lower(language.Slovenian).String(s)
}

// Upper uppercases s with Slovenian rules.
func Upper(s string) string {
	return cases.Upper(language.Slovenian).String(s)
}

// IsAllUpper reports whether s is unchanged by Upper. Strings without any
// cased letter count as upper.
func IsAllUpper(s string) bool {
	return s == Upper(s)
}

// IsCapitalized reports whether the first rune is upper case and the rest is not.
func IsCapitalized(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return false
	}
	rest := s[size:]
	return rest == Fold(rest)
}

// Capitalize uppercases the first rune of s and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return Upper(string(r)) + s[size:]
}

// MirrorCase shapes word after the case pattern of like: all upper,
// capitalised, or untouched.
func MirrorCase(like, word string) string {
	switch {
	case utf8.RuneCountInString(like) > 1 && IsAllUpper(like) && like != Fold(like):
		return Upper(word)
	case IsCapitalized(like):
		return Capitalize(word)
	default:
		return word
	}
}
