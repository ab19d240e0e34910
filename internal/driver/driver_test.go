package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lektor/internal/cache"
	"lektor/internal/check"
	"lektor/internal/observ"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListTextFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.txt":        "",
		"a.md":         "",
		"sub/c.TXT":    "",
		"slika.png":    "",
		".git/d.txt":   "",
		"sub/.x/e.txt": "",
	})
	files, err := ListTextFiles(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if got := strings.Join(rel, ","); got != "a.md,b.txt,sub/c.TXT" {
		t.Errorf("files = %s", got)
	}
}

func TestCheckDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt": "s Markom\r\n",
		"b.txt": "Vse je prav.",
		"c.md":  "Obdobje 1939-1945.",
	})
	events := make(chan Event, 64)
	timer := observ.NewTimer()
	opts := Options{
		Engine:   check.NewEngine(check.Options{Parallel: true}, nil),
		Jobs:     2,
		Progress: ChannelSink{Ch: events},
		Timer:    timer,
	}
	fs, results, err := CheckDir(context.Background(), dir, nil, opts)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	close(events)
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	counts := []int{1, 0, 1}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		if got := len(r.Result.Issues); got != counts[i] {
			t.Errorf("%s: %d issues, want %d", r.Path, got, counts[i])
		}
		if r.Bag.Len() != counts[i] {
			t.Errorf("%s: bag has %d issues", r.Path, r.Bag.Len())
		}
	}
	// CRLF is folded before checking.
	if got := results[0].Result.Issues[0].Span.Text(string(fs.Get(results[0].FileID).Content)); got != "s Markom" {
		t.Errorf("span text = %q", got)
	}

	done := 0
	for ev := range events {
		if ev.File != "" && ev.Stage == StageCheck && ev.Status == StatusDone {
			done++
		}
	}
	if done != 3 {
		t.Errorf("done events = %d", done)
	}
	if r := timer.Report(); len(r.Phases) != 2 {
		t.Errorf("timer phases = %+v", r.Phases)
	}
}

type brokenProvider struct{}

func (brokenProvider) SpellChecker(context.Context) (check.SpellChecker, error) {
	return nil, errors.New("no dictionary")
}

func TestCheckDirStopsWhenLexiconIsMissing(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "beseda", "b.txt": "beseda"})
	opts := Options{Engine: check.NewEngine(check.Options{Spelling: true}, brokenProvider{})}
	if _, _, err := CheckDir(context.Background(), dir, nil, opts); err == nil || !strings.Contains(err.Error(), "no dictionary") {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckFileUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "Pozdravljeni ,lep dan"})
	c, err := cache.Open("lektor", filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Engine: check.NewEngine(check.Options{}, nil), Cache: c}
	path := filepath.Join(dir, "a.txt")

	_, first, err := CheckFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := CheckFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Errorf("cached = %v/%v, want false/true", first.Cached, second.Cached)
	}
	if len(second.Result.Issues) != 2 || second.Result.GrammarCount != 2 {
		t.Errorf("cached result = %+v", second.Result)
	}
}

func TestCheckReader(t *testing.T) {
	opts := Options{Engine: check.NewEngine(check.Options{}, nil)}
	fs, res, err := CheckReader(context.Background(), "<stdin>", strings.NewReader("k gospodu"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Result.Issues) != 1 || fs.Len() != 1 {
		t.Errorf("issues = %+v", res.Result.Issues)
	}
}
