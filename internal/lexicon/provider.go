package lexicon

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"lektor/internal/check"
	"lektor/internal/trace"
)

// ErrResourceUnavailable means the affix or word list could not be loaded.
// A run that needs spelling stops with it.
var ErrResourceUnavailable = errors.New("spelling dictionary unavailable")

// Paths locate the dictionary files. Personal is optional.
type Paths struct {
	Aff      string
	Dic      string
	Personal string
}

// WordSource supplies extra words added on every load, e.g. the user
// dictionary.
type WordSource interface {
	Words() []string
}

// Provider loads the lexicon on first use and shares it afterwards.
// Concurrent first callers wait for a single load.
type Provider struct {
	paths Paths
	user  WordSource

	group singleflight.Group
	cur   atomic.Pointer[Lexicon]
	gen   atomic.Uint64
}

var _ check.SpellProvider = (*Provider)(nil)

// NewProvider returns a provider; user may be nil.
func NewProvider(paths Paths, user WordSource) *Provider {
	return &Provider{paths: paths, user: user}
}

// SpellChecker returns the loaded lexicon, loading it if needed.
func (p *Provider) SpellChecker(ctx context.Context) (check.SpellChecker, error) {
	lex, err := p.Lexicon(ctx)
	if err != nil {
		return nil, err
	}
	return lex, nil
}

// Lexicon is SpellChecker with the concrete type.
func (p *Provider) Lexicon(ctx context.Context) (*Lexicon, error) {
	if lex := p.cur.Load(); lex != nil {
		return lex, nil
	}
	ch := p.group.DoChan("load", func() (any, error) {
		return p.load(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Lexicon), nil
	}
}

// Loaded reports whether a lexicon is ready without loading one.
func (p *Provider) Loaded() bool {
	return p.cur.Load() != nil
}

// Reset drops the loaded lexicon; the next call reloads it. A load that
// is in flight while Reset runs is not kept.
func (p *Provider) Reset() {
	p.gen.Add(1)
	p.cur.Store(nil)
}

// AddWord teaches the loaded lexicon a word without a reload. It is a
// no-op before the first load, which picks the word up from the source.
func (p *Provider) AddWord(word string) {
	if lex := p.cur.Load(); lex != nil {
		lex.AddWord(word)
	}
}

func (p *Provider) load(ctx context.Context) (*Lexicon, error) {
	_, span := trace.Start(ctx, trace.ScopeRun, "lexicon-load")
	defer span.End("")

	gen := p.gen.Load()
	lex, err := LoadFiles(p.paths.Aff, p.paths.Dic)
	if err != nil {
		span.WithExtra("error", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	if p.paths.Personal != "" {
		if err := lex.ApplyPersonalFile(p.paths.Personal); err != nil {
			return nil, fmt.Errorf("%w: personal %s: %w", ErrResourceUnavailable, p.paths.Personal, err)
		}
	}
	if p.user != nil {
		for _, w := range p.user.Words() {
			lex.AddWord(w)
		}
	}
	span.WithExtra("stems", fmt.Sprint(lex.Len()))
	if p.gen.Load() == gen {
		p.cur.Store(lex)
	}
	return lex, nil
}
