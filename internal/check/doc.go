// Package check is the annotation engine: pattern checkers over plain text
// and the aggregation of their findings.
//
// Checkers are pure functions of the text. Each returns issues in the order
// it found them, deduplicated by its own key:
//
//	voicing      s/z and k/h before the next word         key: lower(prep + word)
//	punctuation  six spacing rules, one shared seen set   key: literal match
//	comma        three passes, one shared seen set        key: lower(word conj word)
//	spelling     unknown words from a SpellChecker        key: lower(word)
//
// Comma passes claim the spans they report; a later pass never reports a
// span that overlaps one claimed by an earlier pass.
//
// Offsets are byte offsets. Go's regexp has no lookahead, so rules that need
// "followed by a word" capture that word and resume scanning where the
// lookahead would have started (see scan).
package check
