package lexicon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const testAff = `SET UTF-8
TRY aeioulrnstvkdjpmbzgčšžcfh
REP 1
REP s š

PFX N Y 1
PFX N 0 ne .

SFX A Y 3
SFX A a e a
SFX A a i a
SFX A 0 o [^a]

SFX B Y 1
SFX B 0 ka/C .

SFX C Y 1
SFX C a i a

NEEDAFFIX X
FORBIDDENWORD F
`

const testDic = `8
hiša/A
lep/AN
Ljubljana/A
mesto
pes/B
kuga/XA
slab/F
a\/b
`

func newTestLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := Load(strings.NewReader(testAff), strings.NewReader(testDic))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return lex
}

func TestCorrect(t *testing.T) {
	lex := newTestLexicon(t)
	tests := []struct {
		word string
		want bool
	}{
		{"hiša", true},
		{"hiše", true},
		{"hiši", true},
		{"Hiša", true},
		{"HIŠA", true},
		{"hisa", false},
		{"lepo", true},
		{"nelep", true},
		{"nelepo", true},
		{"Ljubljana", true},
		{"Ljubljane", true},
		{"LJUBLJANA", true},
		{"ljubljana", false},
		{"mesto", true},
		{"peska", true},
		{"peski", true},
		{"pesi", false},
		{"kuga", false},
		{"kuge", true},
		{"slab", false},
		{"a/b", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := lex.Correct(tt.word); got != tt.want {
			t.Errorf("Correct(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	lex := newTestLexicon(t)
	tests := []struct {
		word  string
		first string
		has   string
	}{
		{word: "hisa", first: "hiša"},
		{word: "Hisa", first: "Hiša"},
		{word: "ljubljana", first: "Ljubljana"},
		{word: "meto", has: "mesto"},
		{word: "lepmesto", has: "lep mesto"},
	}
	for _, tt := range tests {
		got := lex.Suggest(tt.word)
		if tt.first != "" && (len(got) == 0 || got[0] != tt.first) {
			t.Errorf("Suggest(%q) = %v, want %q first", tt.word, got, tt.first)
		}
		if tt.has != "" && !slices.Contains(got, tt.has) {
			t.Errorf("Suggest(%q) = %v, want it to contain %q", tt.word, got, tt.has)
		}
		if len(got) > MaxSuggestions {
			t.Errorf("Suggest(%q) returned %d suggestions", tt.word, len(got))
		}
	}
	if got := lex.Suggest("qqqqqqqqqqqq"); len(got) != 0 {
		t.Errorf("want no suggestions, got %v", got)
	}
	if a, b := lex.Suggest("meto"), lex.Suggest("meto"); !slices.Equal(a, b) {
		t.Errorf("suggestions are not deterministic: %v vs %v", a, b)
	}
}

func TestApplyPersonal(t *testing.T) {
	lex := newTestLexicon(t)
	err := lex.ApplyPersonal(strings.NewReader("lektor\n\n*lepo\nmiza/hiša\n"))
	if err != nil {
		t.Fatal(err)
	}
	for word, want := range map[string]bool{
		"lektor": true,
		"lepo":   false,
		"lep":    true,
		"miza":   true,
		"mize":   true,
	} {
		if got := lex.Correct(word); got != want {
			t.Errorf("Correct(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestLoadLegacyEncoding(t *testing.T) {
	enc := charmap.ISO8859_2.NewEncoder()
	aff, err := enc.String(strings.Replace(testAff, "SET UTF-8", "SET ISO8859-2", 1))
	if err != nil {
		t.Fatal(err)
	}
	dic, err := enc.String(testDic)
	if err != nil {
		t.Fatal(err)
	}
	lex, err := Load(strings.NewReader(aff), strings.NewReader(dic))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !lex.Correct("hiše") {
		t.Errorf("ISO-8859-2 dictionary was not decoded")
	}
}

func TestLoadRejectsUnknownEncoding(t *testing.T) {
	_, err := Load(strings.NewReader("SET KOI8-R\n"), strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestCompileCondition(t *testing.T) {
	tests := []struct {
		cond   string
		suffix bool
		stem   string
		want   bool
	}{
		{".", true, "abc", true},
		{"[^a]", true, "lep", true},
		{"[^a]", true, "hiša", false},
		{"a", false, "abc", true},
		{"[a-]", true, "x-", true},
		{"[a-]", true, "b", false},
	}
	for _, tt := range tests {
		re, err := compileCondition(tt.cond, tt.suffix)
		if err != nil {
			t.Fatalf("compileCondition(%q): %v", tt.cond, err)
		}
		if got := re.MatchString(tt.stem); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.cond, tt.stem, got, tt.want)
		}
	}
	if _, err := compileCondition("[ab", true); err == nil {
		t.Errorf("unterminated class accepted")
	}
}

type staticWords []string

func (s staticWords) Words() []string { return s }

func writeDictionary(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	paths := Paths{
		Aff:      filepath.Join(dir, "index.aff"),
		Dic:      filepath.Join(dir, "index.dic"),
		Personal: filepath.Join(dir, "custom.dic"),
	}
	for path, body := range map[string]string{paths.Aff: testAff, paths.Dic: testDic, paths.Personal: "Lektor\n"} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func TestProvider(t *testing.T) {
	p := NewProvider(writeDictionary(t), staticWords{"vejica"})
	if p.Loaded() {
		t.Fatal("provider must load lazily")
	}
	sc, err := p.SpellChecker(context.Background())
	if err != nil {
		t.Fatalf("SpellChecker: %v", err)
	}
	for _, w := range []string{"hiša", "Lektor", "vejica"} {
		if !sc.Correct(w) {
			t.Errorf("%q should be known", w)
		}
	}
	p.AddWord("novobeseda")
	if !sc.Correct("novobeseda") {
		t.Errorf("AddWord not visible in the loaded lexicon")
	}
	p.Reset()
	if p.Loaded() {
		t.Fatal("Reset kept the lexicon")
	}
	sc, err = p.SpellChecker(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sc.Correct("novobeseda") {
		t.Errorf("words added before Reset must not survive a reload")
	}
}

func TestProviderMissingFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProvider(Paths{Aff: filepath.Join(dir, "index.aff"), Dic: filepath.Join(dir, "index.dic")}, nil)
	sc, err := p.SpellChecker(context.Background())
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("err = %v, want ErrResourceUnavailable", err)
	}
	if sc != nil {
		t.Errorf("unexpected checker %v", sc)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause lost: %v", err)
	}
}
