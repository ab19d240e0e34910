// Package lexicon implements a Hunspell-format affix dictionary.
//
// Only the parts of the format needed for spell checking and suggestions
// are supported: SET, FLAG, TRY, REP, PFX/SFX with conditions and cross
// products, one level of suffix continuation, NEEDAFFIX and FORBIDDENWORD.
// Compounding directives are ignored.
//
// Stems are kept unexpanded; a word is checked by stripping affixes and
// looking the candidate stem up with the affix flag.
package lexicon
