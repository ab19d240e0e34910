package fix

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lektor/internal/check"
	"lektor/internal/diag"
	"lektor/internal/document"
	"lektor/internal/source"
)

// oneWrongWord rejects a single word.
type oneWrongWord struct{ wrong, suggestion string }

func (w oneWrongWord) Correct(word string) bool     { return word != w.wrong }
func (w oneWrongWord) Suggest(word string) []string { return []string{w.suggestion} }

func grammarEngine() *check.Engine {
	return check.NewEngine(check.Options{Commas: true}, nil)
}

func TestApplyAllFixesSafeIssues(t *testing.T) {
	doc := document.NewBuffer("s Markom ,ker 1939-1945")
	res, err := Apply(context.Background(), doc, grammarEngine(), ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := doc.Text(), "z Markom, ker 1939–1945"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if len(res.Applied) != 4 || res.Rounds != 4 {
		t.Errorf("applied %d fixes in %d rounds", len(res.Applied), res.Rounds)
	}
	if len(res.Final.Issues) != 0 {
		t.Errorf("issues left after fixing: %+v", res.Final.Issues)
	}
}

func TestApplyAllSkipsHeuristicFixes(t *testing.T) {
	doc := document.NewBuffer("Rekel je da pride.")
	res, err := Apply(context.Background(), doc, grammarEngine(), ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "safe-with-heuristics") {
		t.Errorf("skipped = %+v", res.Skipped)
	}
	if doc.Revisions() != 0 {
		t.Errorf("document was edited")
	}
}

func TestApplyOncePrefersSafeFix(t *testing.T) {
	doc := document.NewBuffer("Rekel je da pride s Markom.")
	res, err := Apply(context.Background(), doc, grammarEngine(), ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "Rekel je da pride z Markom." {
		t.Errorf("text = %q", got)
	}
	if len(res.Applied) != 1 || res.Applied[0].Code != diag.PrepVoicingSZ {
		t.Errorf("applied = %+v", res.Applied)
	}
	if len(res.Final.Issues) != 1 || res.Final.Issues[0].Code != diag.CommaBeforeConj {
		t.Errorf("final issues = %+v", res.Final.Issues)
	}
}

func TestApplyByID(t *testing.T) {
	ctx := context.Background()
	text := "Rekel je da pride."
	checked, err := grammarEngine().Run(ctx, text)
	if err != nil {
		t.Fatal(err)
	}
	if len(checked.Issues) != 1 {
		t.Fatalf("want 1 issue, got %d", len(checked.Issues))
	}
	id := checked.Issues[0].ID()

	doc := document.NewBuffer(text)
	if _, err := Apply(ctx, doc, grammarEngine(), ApplyOptions{Mode: ApplyModeID, TargetID: id}); err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "Rekel je, da pride." {
		t.Errorf("text = %q", got)
	}

	doc = document.NewBuffer(text)
	res, err := Apply(ctx, doc, grammarEngine(), ApplyOptions{Mode: ApplyModeID, TargetID: id, Choice: 3})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "no suggestion #4" {
		t.Errorf("skipped = %+v", res.Skipped)
	}

	res, err = Apply(ctx, doc, grammarEngine(), ApplyOptions{Mode: ApplyModeID, TargetID: "COM4002-0-999"})
	if !errors.Is(err, ErrNoFixes) || len(res.Skipped) != 1 {
		t.Errorf("unknown id: err = %v, skipped = %+v", err, res.Skipped)
	}
}

func TestApplySpellingReplacesWholeWords(t *testing.T) {
	eng := check.NewEngine(check.Options{Spelling: true}, check.StaticProvider{Checker: oneWrongWord{"hisa", "hiša"}})
	doc := document.NewBuffer("prehisa hisa")
	if _, err := Apply(context.Background(), doc, eng, ApplyOptions{Mode: ApplyModeOnce}); err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "prehisa hiša" {
		t.Errorf("text = %q", got)
	}
}

// flipper reports the whole text and suggests the other letter, so its
// fixes undo each other.
type flipper struct{}

func (flipper) Run(_ context.Context, text string) (*check.Result, error) {
	other := map[string]string{"a": "b", "b": "a"}[text]
	return &check.Result{Issues: []diag.Issue{{
		Code:        diag.PunctRangeDash,
		Span:        source.SpanOf(0, 0, len(text)),
		Matched:     text,
		Suggestions: []string{other},
	}}}, nil
}

func TestApplyAllStopsOnCycles(t *testing.T) {
	doc := document.NewBuffer("a")
	res, err := Apply(context.Background(), doc, flipper{}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 2 {
		t.Errorf("applied %d fixes", len(res.Applied))
	}
	if last := res.Skipped[len(res.Skipped)-1]; last.Reason != "fixes undo each other" {
		t.Errorf("last skip = %+v", last)
	}
}
