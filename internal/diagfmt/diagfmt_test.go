package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lektor/internal/diag"
	"lektor/internal/source"
)

func newBag(t *testing.T, text string, issues ...diag.Issue) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.txt", []byte(text))
	bag := diag.NewBag(0)
	for _, is := range issues {
		is.Span.File = id
		bag.Add(is)
	}
	return bag, fs
}

func issueAt(text string, code diag.Code, matched string, suggestions ...string) diag.Issue {
	start := strings.Index(text, matched)
	return diag.Issue{
		Code:        code,
		Span:        source.SpanOf(0, start, start+len(matched)),
		Matched:     matched,
		Suggestions: suggestions,
	}
}

func TestPrettyPhraseIssue(t *testing.T) {
	text := "Grem k gospodu.\n"
	bag, fs := newBag(t, text, issueAt(text, diag.PrepVoicingKH, "k gospodu", "h gospodu"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowSummary: true}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}

	want := "test.txt:1:6: ERROR PRP2002: Preposition k/h does not agree with the next word: \"k gospodu\"\n" +
		"  |\n" +
		"1 | Grem k gospodu.\n" +
		"  |      ^" + strings.Repeat("~", 8) + "\n" +
		"  = predlog: \"h gospodu\"\n" +
		"\n" +
		"Najdeno: 1 slovnična napaka.\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyCaretUsesDisplayWidth(t *testing.T) {
	text := "Hiša je lepa. hisa"
	bag, fs := newBag(t, text, issueAt(text, diag.SpellUnknownWord, "hisa", "hiša"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	out := buf.String()
	// "Hiša je lepa. " is 15 bytes but 14 cells wide
	if !strings.Contains(out, "test.txt:1:16:") {
		t.Fatalf("expected byte column 16 in header:\n%s", out)
	}
	if !strings.Contains(out, "|"+strings.Repeat(" ", 15)+"^~~~\n") {
		t.Fatalf("caret not aligned:\n%s", out)
	}
	if !strings.Contains(out, "= predlogi: hiša\n") {
		t.Fatalf("missing suggestion line:\n%s", out)
	}
}

func TestPrettySuggestionCap(t *testing.T) {
	text := "abcde"
	many := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"}
	bag, fs := newBag(t, text,
		issueAt(text, diag.SpellUnknownWord, "abcde", many...),
	)

	tests := []struct {
		name string
		max  int
		want string
	}{
		{"default", 0, "predlogi: a1, a2, a3, a4, a5, a6\n"},
		{"custom", 2, "predlogi: a1, a2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{MaxSuggestions: tt.max}); err != nil {
				t.Fatalf("Pretty() error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Fatalf("want %q in:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestPrettyNoSuggestions(t *testing.T) {
	text := "xyzzy"
	bag, fs := newBag(t, text, issueAt(text, diag.SpellUnknownWord, "xyzzy"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Ni predlogov") {
		t.Fatalf("expected Ni predlogov:\n%s", buf.String())
	}
}

func TestPrettyContextAndPreview(t *testing.T) {
	text := "Prva vrstica.\nDruga ,vrstica.\nTretja vrstica.\n"
	bag, fs := newBag(t, text, issueAt(text, diag.PunctSpaceBefore, "Druga ,", "Druga,"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowPreview: true}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"1 | Prva vrstica.\n",
		"2 | Druga ,vrstica.\n",
		"3 | Tretja vrstica.\n",
		"- Druga ,vrstica.\n",
		"+ Druga,vrstica.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyEmptyBagSummary(t *testing.T) {
	bag, fs := newBag(t, "Vse je prav.")

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowSummary: true}); err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	if got := buf.String(); got != diag.NoIssuesMessage+"\n" {
		t.Fatalf("got %q", got)
	}
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	text := "Z kolesom.\nhisa"
	bag, fs := newBag(t, text,
		issueAt(text, diag.PrepVoicingSZ, "Z kolesom", "S kolesom"),
		issueAt(text, diag.SpellUnknownWord, "hisa"),
	)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludePreviews: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output IssuesOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || output.GrammarCount != 1 || output.SpellCount != 1 {
		t.Fatalf("unexpected counts: %+v", output)
	}
	if output.Summary != "Najdeno: 1 slovnična napaka in 1 pravopisna napaka." {
		t.Errorf("unexpected summary %q", output.Summary)
	}

	first := output.Issues[0]
	if first.Code != "PRP2001" || first.Severity != "error" || first.Applicability != "always-safe" || !first.PhraseLevel {
		t.Errorf("unexpected first issue: %+v", first)
	}
	if first.Location.File != "test.txt" || first.Location.StartLine != 1 || first.Location.StartCol != 1 {
		t.Errorf("unexpected location: %+v", first.Location)
	}
	if first.Preview == nil || first.Preview.AfterLines[0] != "S kolesom." {
		t.Errorf("unexpected preview: %+v", first.Preview)
	}

	second := output.Issues[1]
	if second.Suggestions == nil || len(second.Suggestions) != 0 {
		t.Errorf("suggestions should be an empty list, got %v", second.Suggestions)
	}
	if second.Preview != nil {
		t.Errorf("issue without suggestions has no preview")
	}
	if second.Location.StartLine != 2 || second.Location.StartCol != 1 {
		t.Errorf("unexpected location: %+v", second.Location)
	}
}

func TestJSONMaxKeepsCounts(t *testing.T) {
	text := "ena dva tri"
	bag, fs := newBag(t, text,
		issueAt(text, diag.SpellUnknownWord, "ena"),
		issueAt(text, diag.SpellUnknownWord, "dva"),
		issueAt(text, diag.SpellUnknownWord, "tri"),
	)
	output := BuildIssuesOutput(bag, fs, JSONOpts{Max: 1})
	if output.Count != 1 || output.SpellCount != 3 {
		t.Fatalf("unexpected output: count=%d spell=%d", output.Count, output.SpellCount)
	}
}

func TestSarif(t *testing.T) {
	text := "Hiša je lepa. hisa"
	bag, fs := newBag(t, text, issueAt(text, diag.SpellUnknownWord, "hisa", "hiša", "hiše"))

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "lektor", ToolVersion: "test"}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						Region struct {
							StartColumn uint32 `json:"startColumn"`
							ByteOffset  uint32 `json:"byteOffset"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				Fixes []json.RawMessage `json:"fixes"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "SPL1001" {
		t.Fatalf("unexpected rules: %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(run.Results))
	}
	res := run.Results[0]
	if res.Level != "error" || len(res.Fixes) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
	region := res.Locations[0].PhysicalLocation.Region
	if region.StartColumn != 15 || region.ByteOffset != 15 {
		t.Errorf("unexpected region: %+v", region)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"":         PathModeAuto,
		"absolute": PathModeAbsolute,
		"relative": PathModeRelative,
		"basename": PathModeBasename,
	} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}
