package check

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"lektor/internal/diag"
	"lektor/internal/sanitize"
	"lektor/internal/source"
	"lektor/internal/trace"
)

// Options select which checkers run.
type Options struct {
	// Commas enables comma placement. Off by default: its heuristics have
	// more false positives than the other rules.
	Commas bool
	// Spelling runs the spelling adapter when a provider is configured.
	Spelling bool
	// Parallel runs the checkers concurrently. Output order is the same.
	Parallel bool
}

// DefaultOptions: everything except comma placement.
func DefaultOptions() Options {
	return Options{Spelling: true, Parallel: true}
}

// Result is the outcome of one run over one text.
type Result struct {
	Issues       []diag.Issue
	GrammarCount int
	SpellCount   int
	// URLs lists the addresses blanked before checking.
	URLs []string
}

// Summary renders the Slovenian one-line report.
func (r *Result) Summary() string {
	return diag.Summary(r.GrammarCount, r.SpellCount)
}

// Engine is the aggregator: it runs the checkers in fixed priority order and
// concatenates their findings.
type Engine struct {
	opts  Options
	spell SpellProvider
}

// NewEngine builds an engine. spell may be nil, which disables spelling.
func NewEngine(opts Options, spell SpellProvider) *Engine {
	return &Engine{opts: opts, spell: spell}
}

func (e *Engine) Options() Options { return e.opts }

// stage is one checker slot in priority order.
type stage struct {
	name string
	run  func(file source.FileID, text string, skip skipFunc) []diag.Issue
}

// stages returns the enabled checkers in priority order: voicing s/z,
// voicing k/h, punctuation, comma, spelling.
func (e *Engine) stages(sc SpellChecker) []stage {
	out := []stage{
		{name: "voicing-sz", run: szChecker.check},
		{name: "voicing-kh", run: khChecker.check},
		{name: "punctuation", run: checkPunctuation},
	}
	if e.opts.Commas {
		out = append(out, stage{name: "comma", run: checkCommas})
	}
	if sc != nil {
		out = append(out, stage{name: "spelling", run: func(file source.FileID, text string, skip skipFunc) []diag.Issue {
			return checkSpelling(file, text, sc, skip)
		}})
	}
	return out
}

// Run checks text as file 0.
func (e *Engine) Run(ctx context.Context, text string) (*Result, error) {
	return e.RunFile(ctx, 0, text)
}

// RunFile checks text and attributes spans to file. URLs are blanked first;
// hits touching a blanked URL are ignored before deduplication. The only error is an
// unavailable lexicon, in which case no partial result is returned.
func (e *Engine) RunFile(ctx context.Context, file source.FileID, text string) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "check")
	defer span.End("")

	var sc SpellChecker
	if e.opts.Spelling && e.spell != nil {
		var err error
		sc, err = e.spell.SpellChecker(ctx)
		if err != nil {
			span.WithExtra("error", err.Error())
			return nil, fmt.Errorf("spelling: %w", err)
		}
	}

	clean := sanitize.BlankURLs(text)
	skip := func(start, end int) bool {
		return clean.Touches(source.SpanOf(file, start, end))
	}
	stages := e.stages(sc)
	slots := make([][]diag.Issue, len(stages))

	runStage := func(ctx context.Context, i int) {
		_, sp := trace.Start(ctx, trace.ScopeChecker, stages[i].name)
		slots[i] = stages[i].run(file, clean.Text, skip)
		sp.WithExtra("issues", strconv.Itoa(len(slots[i]))).End("")
	}

	if e.opts.Parallel && len(stages) > 1 {
		p := pool.New().WithContext(ctx)
		for i := range stages {
			p.Go(func(ctx context.Context) error {
				runStage(ctx, i)
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range stages {
			runStage(ctx, i)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{URLs: clean.Removed()}
	for _, issues := range slots {
		for _, is := range issues {
			trace.Point(ctx, trace.ScopeRule, is.Code.ID(), is.Span.String())
			res.Issues = append(res.Issues, is)
			if is.Category().IsGrammar() {
				res.GrammarCount++
			} else {
				res.SpellCount++
			}
		}
	}
	span.WithExtra("grammar", strconv.Itoa(res.GrammarCount)).
		WithExtra("spelling", strconv.Itoa(res.SpellCount))
	return res, nil
}
