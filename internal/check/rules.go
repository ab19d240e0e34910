package check

import "lektor/internal/diag"

// Rule tables. Order matters: alternations are tried left to right, so
// longer phrases sharing a prefix with shorter ones come first where the
// following word could otherwise be swallowed.

// commaPhrases are multi-word conjunctions that take a comma before them.
var commaPhrases = []string{
	"in sicer", "in to", "in če", "in ko", "in da", "in ker", "in ki",
	"ter če", "ter ko", "ter da", "ter ker", "ter ki",
	"kot da", "kot bi", "kot če",
	"kot sem", "kot si", "kot je", "kot sva", "kot sta", "kot smo", "kot ste", "kot so",
	"kot bom", "kot boš", "kot bo", "kot bova", "kot bosta", "kot bomo", "kot boste", "kot bodo",
	"ne da",
	"zato da", "zato ker", "zato če", "zato kadar",
	"razen če", "razen da",
	"tako da", "potem ko", "brez da", "medtem ko", "namesto da",
	"že ko", "češ da", "prej ko", "toliko da", "še ko", "vtem ko", "brž ko", "šele ko",
	"posebno ko", "zlasti če", "zlasti ko", "zlasti kadar",
	"kljub temu da", "s tem da",
}

// commaConjunctions are single-word subordinating or adversative conjunctions.
var commaConjunctions = []string{
	"ki", "ker", "da", "ko", "če", "vendar", "ampak", "toda", "temveč",
	"čeprav", "četudi", "kadar", "dokler", "oziroma", "preden", "odkar", "saj",
}

// compoundPair is a two-part conjunction that must not be split by a comma.
type compoundPair struct {
	first, second string
}

var compoundPairs = []compoundPair{
	{"zato", "da"}, {"zato", "ker"}, {"zato", "če"}, {"zato", "kadar"},
	{"namesto", "da"}, {"češ", "da"}, {"medtem", "ko"}, {"tako", "da"},
	{"prej", "ko"}, {"toliko", "da"}, {"potem", "ko"}, {"že", "ko"},
	{"še", "ko"}, {"vtem", "ko"}, {"brž", "ko"}, {"šele", "ko"},
	{"posebno", "ko"}, {"zlasti", "če"}, {"zlasti", "ko"}, {"zlasti", "kadar"},
	{"razen", "če"}, {"razen", "da"}, {"brez", "da"},
	{"kljub temu", "da"}, {"s tem", "da"},
}

// units that take a space after a number: "5 kg", never "5kg".
var measureUnits = []string{"mm", "cm", "km", "mg", "kg", "ml", "dl", "min", "m", "g", "l", "h", "s"}

// voicingFamily describes one preposition pair whose form depends on the
// first sound of the next word.
type voicingFamily struct {
	name string
	code diag.Code
	// onTrigger is used when the next word starts with one of triggers.
	onTrigger, otherwise string
	triggers             string
}

var (
	// s before c č f h k p s š t, z otherwise.
	voicingSZ = voicingFamily{
		name:      "voicing-sz",
		code:      diag.PrepVoicingSZ,
		onTrigger: "s",
		otherwise: "z",
		triggers:  "cčfhkpsšt",
	}
	// h before k and g, k otherwise.
	voicingKH = voicingFamily{
		name:      "voicing-kh",
		code:      diag.PrepVoicingKH,
		onTrigger: "h",
		otherwise: "k",
		triggers:  "kg",
	}
)
