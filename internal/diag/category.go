package diag

// Category groups codes by the checker family that reports them.
type Category uint8

const (
	CatSpelling Category = iota
	CatPreposition
	CatComma
	CatPunctuation
)

// Categories lists every category in reporting order.
var Categories = []Category{CatPreposition, CatPunctuation, CatComma, CatSpelling}

func (c Category) String() string {
	switch c {
	case CatSpelling:
		return "spelling"
	case CatPreposition:
		return "preposition"
	case CatComma:
		return "comma"
	case CatPunctuation:
		return "punctuation"
	}
	return "unknown"
}

// Label is the Slovenian name shown to writers.
func (c Category) Label() string {
	switch c {
	case CatSpelling:
		return "črkovanje"
	case CatPreposition:
		return "predlog"
	case CatComma:
		return "vejica"
	case CatPunctuation:
		return "ločila"
	}
	return "neznano"
}

// IsPhraseLevel is false only for spelling: every other category matches
// more than a single word and is replaced as a phrase.
func (c Category) IsPhraseLevel() bool {
	return c != CatSpelling
}

// IsGrammar reports whether issues of c count towards grammarCount.
func (c Category) IsGrammar() bool {
	return c != CatSpelling
}

// ParseCategory maps a category name (English or Slovenian) back to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CatSpelling, CatPreposition, CatComma, CatPunctuation} {
		if s == c.String() || s == c.Label() {
			return c, true
		}
	}
	return 0, false
}
