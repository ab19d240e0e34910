package check

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"lektor/internal/diag"
	"lektor/internal/testkit"
)

type failingProvider struct{ err error }

func (p failingProvider) SpellChecker(context.Context) (SpellChecker, error) { return nil, p.err }

func grammarOnly(commas bool) *Engine {
	return NewEngine(Options{Commas: commas, Parallel: true}, nil)
}

func TestEngineScenarios(t *testing.T) {
	tests := []struct {
		name   string
		commas bool
		text   string
		want   []want
	}{
		{
			name: "punctuation",
			text: "Pozdravljeni ,lep dan",
			want: []want{
				{diag.PunctSpaceBefore, "Pozdravljeni ,", "Pozdravljeni,"},
				{diag.PunctMissingSpace, ",lep", ", lep"},
			},
		},
		{
			name: "range",
			text: "Obdobje 1939-1945 je bilo težko.",
			want: []want{{diag.PunctRangeDash, "1939-1945", "1939–1945"}},
		},
		{
			name:   "comma before conjunction",
			commas: true,
			text:   "Rekel je da pride.",
			want:   []want{{diag.CommaBeforeConj, "je da pride", "je, da pride"}},
		},
		{
			name: "commas are off by default",
			text: "Rekel je da pride.",
		},
		{
			name:   "misplaced compound comma",
			commas: true,
			text:   "Šel bom, zato, da pomagam.",
			want:   []want{{diag.CommaInsideCompound, "bom, zato, da pomagam", "bom, zato da pomagam"}},
		},
		{
			name: "voicing",
			text: "s Markom",
			want: []want{{diag.PrepVoicingSZ, "s Markom", "z Markom"}},
		},
		{
			name: "voicing correct",
			text: "z Markom",
		},
		{
			name: "urls are never checked",
			text: "Obišči https://primer.si/a,b in www.test.si/Nova.Stran danes.",
		},
		{
			name: "url between preposition and noun keeps later defect",
			text: "s https://x.si Markom in s Markom",
			want: []want{{diag.PrepVoicingSZ, "s Markom", "z Markom"}},
		},
		{
			name:   "url inside comma hit keeps later defect",
			commas: true,
			text:   "Vem https://a.si da pride. Vem da pride.",
			want:   []want{{diag.CommaBeforeConj, "Vem da pride", "Vem, da pride"}},
		},
		{
			name: "priority order",
			text: "Z kolesom grem k gospodu ,ker",
			want: []want{
				{diag.PrepVoicingSZ, "Z kolesom", "S kolesom"},
				{diag.PrepVoicingKH, "k gospodu", "h gospodu"},
				{diag.PunctSpaceBefore, "gospodu ,", "gospodu,"},
				{diag.PunctMissingSpace, ",ker", ", ker"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := grammarOnly(tt.commas).Run(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			assertIssues(t, tt.text, res.Issues, tt.want)
			if res.GrammarCount != len(tt.want) || res.SpellCount != 0 {
				t.Errorf("counts = %d/%d, want %d/0", res.GrammarCount, res.SpellCount, len(tt.want))
			}
		})
	}
}

func TestEngineReportsBlankedURLs(t *testing.T) {
	res, err := grammarOnly(false).Run(context.Background(), "Glej www.primer.si,x in http://a.si")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"www.primer.si,x", "http://a.si"}; !reflect.DeepEqual(res.URLs, want) {
		t.Errorf("URLs = %v, want %v", res.URLs, want)
	}
}

func TestEngineSpellingComesLast(t *testing.T) {
	lex := newFakeLexicon("Šel", "sem", "Markom", "in")
	eng := NewEngine(Options{Spelling: true, Parallel: true}, StaticProvider{Checker: lex})

	text := "Šel sem s Markom in Ano"
	res, err := eng.Run(context.Background(), text)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := testkit.CheckIssueInvariants(text, res.Issues); err != nil {
		t.Fatal(err)
	}
	if len(res.Issues) != 2 {
		t.Fatalf("want 2 issues:\n%s", dumpIssues(res.Issues))
	}
	if res.Issues[0].Category() != diag.CatPreposition || res.Issues[1].Matched != "Ano" {
		t.Errorf("unexpected order:\n%s", dumpIssues(res.Issues))
	}
	if res.GrammarCount != 1 || res.SpellCount != 1 {
		t.Errorf("counts = %d/%d", res.GrammarCount, res.SpellCount)
	}
	if got := res.Summary(); got != "Najdeno: 1 slovnična napaka in 1 pravopisna napaka." {
		t.Errorf("Summary = %q", got)
	}
}

func TestEngineUnavailableLexiconAbortsRun(t *testing.T) {
	boom := errors.New("index.aff: no such file")
	eng := NewEngine(Options{Spelling: true}, failingProvider{err: boom})
	res, err := eng.Run(context.Background(), "s Markom")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if res != nil {
		t.Errorf("no partial result expected, got %+v", res)
	}
}

func TestEngineParallelMatchesSequential(t *testing.T) {
	text := strings.Repeat("Z kolesom grem k gospodu ,ker je rekel da pride 1939-1945 in 5kg. ", 20)
	par, err := NewEngine(Options{Commas: true, Parallel: true}, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := NewEngine(Options{Commas: true}, nil).Run(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(par.Issues, seq.Issues) {
		t.Fatalf("parallel and sequential runs differ:\n%s\nvs\n%s", dumpIssues(par.Issues), dumpIssues(seq.Issues))
	}
}

func TestEngineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := grammarOnly(false).Run(ctx, "s Markom"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// Applying a suggestion and re-running must not report the same defect again.
func TestSuggestionsAreIdempotent(t *testing.T) {
	texts := []string{
		"Pozdravljeni ,lep dan",
		"Obdobje 1939-1945 je bilo težko.",
		"Rekel je da pride.",
		"Šel bom, zato, da pomagam.",
		"Pomagal bom tako da bo lažje.",
		"s Markom in k gospodu",
		"Tehta 5kg, raste 50%.Nova vrstica.",
	}
	eng := NewEngine(Options{Commas: true}, nil)
	for _, text := range texts {
		res, err := eng.Run(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		for _, is := range res.Issues {
			best, _ := is.Best()
			fixed := strings.Replace(text, is.Matched, best, 1)
			again, err := eng.Run(context.Background(), fixed)
			if err != nil {
				t.Fatal(err)
			}
			for _, other := range again.Issues {
				if other.Code == is.Code && other.Matched == is.Matched {
					t.Errorf("%q: applying %q -> %q left the same issue", text, is.Matched, best)
				}
			}
		}
	}
}
