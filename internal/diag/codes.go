package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Črkovanje
	SpellInfo        Code = 1000
	SpellUnknownWord Code = 1001

	// Predlogi
	PrepInfo      Code = 2000
	PrepVoicingSZ Code = 2001
	PrepVoicingKH Code = 2002

	// Ločila
	PunctInfo            Code = 3000
	PunctSpaceBefore     Code = 3001
	PunctMissingSpace    Code = 3002
	PunctMissingSentence Code = 3003
	PunctRangeDash       Code = 3004
	PunctPercentSpacing  Code = 3005
	PunctUnitSpacing     Code = 3006

	// Vejice
	CommaInfo           Code = 4000
	CommaBeforePhrase   Code = 4001
	CommaBeforeConj     Code = 4002
	CommaInsideCompound Code = 4003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown issue",
		SpellInfo:            "Spelling information",
		SpellUnknownWord:     "Unknown word",
		PrepInfo:             "Preposition information",
		PrepVoicingSZ:        "Preposition s/z does not agree with the next word",
		PrepVoicingKH:        "Preposition k/h does not agree with the next word",
		PunctInfo:            "Punctuation information",
		PunctSpaceBefore:     "Space before punctuation mark",
		PunctMissingSpace:    "Missing space after comma or semicolon",
		PunctMissingSentence: "Missing space after full stop",
		PunctRangeDash:       "Number range should use an en dash",
		PunctPercentSpacing:  "Missing space before percent sign",
		PunctUnitSpacing:     "Missing space before unit",
		CommaInfo:            "Comma information",
		CommaBeforePhrase:    "Missing comma before conjunctive phrase",
		CommaBeforeConj:      "Missing comma before conjunction",
		CommaInsideCompound:  "Comma belongs before the compound conjunction",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SPL%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PUN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("COM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Category derives the checker family from the code range.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return CatPreposition
	case ic >= 3000 && ic < 4000:
		return CatPunctuation
	case ic >= 4000 && ic < 5000:
		return CatComma
	}
	return CatSpelling
}

// Severity: unknown words and wrong prepositions are errors, the pattern
// heuristics for punctuation and commas are warnings.
func (c Code) Severity() Severity {
	switch c.Category() {
	case CatSpelling, CatPreposition:
		return SevError
	default:
		return SevWarning
	}
}

// Applicability of the first suggestion for issues with this code.
func (c Code) Applicability() Applicability {
	switch c.Category() {
	case CatPreposition, CatPunctuation:
		return ApplicabilityAlwaysSafe
	case CatComma:
		return ApplicabilitySafeWithHeuristics
	default:
		return ApplicabilityManualReview
	}
}

// ParseCode resolves an ID such as "PUN3001" back to its Code.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
