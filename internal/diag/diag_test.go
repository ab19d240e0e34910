package diag

import (
	"testing"

	"lektor/internal/source"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		grammar, spelling int
		want              string
	}{
		{0, 0, "Ni pravopisnih napak."},
		{1, 0, "Najdeno: 1 slovnična napaka."},
		{2, 0, "Najdeno: 2 slovnični napaki."},
		{0, 3, "Najdeno: 3 pravopisne napake."},
		{5, 1, "Najdeno: 5 slovničnih napak in 1 pravopisna napaka."},
		{102, 111, "Najdeno: 102 slovnični napaki in 111 pravopisnih napak."},
	}
	for _, tt := range tests {
		if got := Summary(tt.grammar, tt.spelling); got != tt.want {
			t.Errorf("Summary(%d, %d) = %q, want %q", tt.grammar, tt.spelling, got, tt.want)
		}
	}
}

func TestCodeClassification(t *testing.T) {
	tests := []struct {
		code   Code
		id     string
		cat    Category
		sev    Severity
		phrase bool
	}{
		{SpellUnknownWord, "SPL1001", CatSpelling, SevError, false},
		{PrepVoicingKH, "PRP2002", CatPreposition, SevError, true},
		{PunctRangeDash, "PUN3004", CatPunctuation, SevWarning, true},
		{CommaInsideCompound, "COM4003", CatComma, SevWarning, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := tt.code.ID(); got != tt.id {
				t.Errorf("ID = %q", got)
			}
			if got := tt.code.Category(); got != tt.cat {
				t.Errorf("Category = %v", got)
			}
			if got := tt.code.Severity(); got != tt.sev {
				t.Errorf("Severity = %v", got)
			}
			is := Issue{Code: tt.code, Matched: "x"}
			if is.IsPhraseLevel() != tt.phrase {
				t.Errorf("IsPhraseLevel = %v", is.IsPhraseLevel())
			}
			if back, ok := ParseCode(tt.id); !ok || back != tt.code {
				t.Errorf("ParseCode(%q) = %v, %v", tt.id, back, ok)
			}
		})
	}
}

func TestBagLimitAndCounts(t *testing.T) {
	b := NewBag(3)
	issues := []Issue{
		{Code: PrepVoicingSZ, Matched: "s Markom"},
		{Code: SpellUnknownWord, Matched: "hiša"},
		{Code: PunctSpaceBefore, Matched: "dan ,"},
		{Code: SpellUnknownWord, Matched: "mize"},
	}
	if n := b.AddAll(issues); n != 3 {
		t.Fatalf("AddAll = %d, want 3", n)
	}
	grammar, spelling := b.Counts()
	if grammar != 2 || spelling != 1 {
		t.Errorf("Counts = %d, %d", grammar, spelling)
	}
	if !b.HasErrors() {
		t.Errorf("expected errors")
	}
	b.Filter(func(is Issue) bool { return is.Category() == CatPunctuation })
	if b.Len() != 1 || b.HasErrors() || !b.HasWarnings() {
		t.Errorf("Filter left %v", b.Items())
	}
}

func TestIssueShownCapsSuggestions(t *testing.T) {
	is := Issue{Code: SpellUnknownWord, Matched: "hsa", Suggestions: []string{"a", "b", "c", "d", "e", "f", "g", "h"}}
	if got := len(is.Shown()); got != MaxShownSuggestions {
		t.Errorf("Shown = %d suggestions", got)
	}
	if len(is.Suggestions) != 8 {
		t.Errorf("Shown must not truncate the issue itself")
	}
	if msg := (Issue{Code: SpellUnknownWord, Matched: "xq"}).Message(); msg != `Unknown word: "xq" (ni predlogov)` {
		t.Errorf("Message = %q", msg)
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/delo")
	id := fs.Add("/delo/besedila/pismo.txt", []byte("Pozdravljeni ,lep dan\ns Markom\n"), 0)

	issues := []Issue{
		{Code: PrepVoicingSZ, Span: source.SpanOf(id, 22, 30), Matched: "s Markom", Suggestions: []string{"z Markom"}},
		{Code: PunctSpaceBefore, Span: source.SpanOf(id, 0, 14), Matched: "Pozdravljeni ,", Suggestions: []string{"Pozdravljeni,"}},
	}
	want := `warning PUN3001 besedila/pismo.txt:1:1 Space before punctuation mark: "Pozdravljeni ," → "Pozdravljeni,"` + "\n" +
		`error PRP2001 besedila/pismo.txt:2:1 Preposition s/z does not agree with the next word: "s Markom" → "z Markom"`
	if got := FormatShort(issues, fs); got != want {
		t.Fatalf("unexpected short output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
