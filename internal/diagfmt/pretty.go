package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lektor/internal/diag"
	"lektor/internal/source"
)

const tabWidth = 4

type palette struct {
	path    *color.Color
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	code    *color.Color
	gutter  *color.Color
	suggest *color.Color
	removed *color.Color
	summary *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.FgMagenta),
		gutter:  color.New(color.FgBlue),
		suggest: color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		summary: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.code, p.gutter, p.suggest, p.removed, p.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует находки в человекочитаемый вид.
// Идёт по bag.Items() (для нескольких файлов ожидается bag.Sort() заранее).
// Для каждой находки печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Title>: "<matched>"
// затем контекст строки с подчёркиванием ^~~~ по Span, затем предложения.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	maxSugg := opts.MaxSuggestions
	if maxSugg <= 0 {
		maxSugg = diag.MaxShownSuggestions
	}

	var b strings.Builder
	for i, is := range bag.Items() {
		if int(is.Span.File) >= fs.Len() {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		writeIssue(&b, fs, is, opts, pal, maxSugg)
	}
	if opts.ShowSummary {
		if bag.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pal.summary.Sprint(diag.Summary(bag.Counts())))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeIssue(b *strings.Builder, fs *source.FileSet, is diag.Issue, opts PrettyOpts, pal palette, maxSugg int) {
	file := fs.Get(is.Span.File)
	start, end := fs.Resolve(is.Span)
	sev := pal.severity(is.Severity())

	fmt.Fprintf(b, "%s: %s %s: %s: %q\n",
		pal.path.Sprintf("%s:%d:%d", opts.PathMode.format(fs, file), start.Line, start.Col),
		sev.Sprint(is.Severity().String()),
		pal.code.Sprint(is.Code.ID()),
		is.Code.Title(),
		is.Matched,
	)

	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- int8 clamped to non-negative
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := max(min(end.Line+ctx, lineCount(file)), start.Line)
	width := len(strconv.FormatUint(uint64(last), 10))

	pad := strings.Repeat(" ", width)
	b.WriteString(pal.gutter.Sprintf("%s |", pad))
	b.WriteByte('\n')
	for ln := first; ln <= last; ln++ {
		line := file.GetLine(ln)
		fmt.Fprintf(b, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), expandTabs(line))
		if ln != start.Line {
			continue
		}
		// подчёркивание только на первой строке span
		from := min(int(start.Col)-1, len(line))
		to := len(line)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(line))
		}
		offset := runewidth.StringWidth(expandTabs(line[:from]))
		span := max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
		fmt.Fprintf(b, "%s %s%s\n",
			pal.gutter.Sprintf("%s |", pad),
			strings.Repeat(" ", offset),
			sev.Sprint("^"+strings.Repeat("~", span-1)),
		)
	}

	writeSuggestions(b, pad, is, pal, maxSugg)

	if opts.ShowPreview {
		if preview, err := buildSuggestionPreview(fs, is); err == nil {
			for _, l := range preview.before {
				fmt.Fprintf(b, "%s %s\n", pad, pal.removed.Sprint("- "+expandTabs(l)))
			}
			for _, l := range preview.after {
				fmt.Fprintf(b, "%s %s\n", pad, pal.suggest.Sprint("+ "+expandTabs(l)))
			}
		}
	}
}

func writeSuggestions(b *strings.Builder, pad string, is diag.Issue, pal palette, maxSugg int) {
	prefix := pal.gutter.Sprintf("%s =", pad)
	switch {
	case len(is.Suggestions) == 0:
		fmt.Fprintf(b, "%s Ni predlogov\n", prefix)
	case is.IsPhraseLevel():
		fmt.Fprintf(b, "%s predlog: %s\n", prefix, pal.suggest.Sprintf("%q", is.Suggestions[0]))
	default:
		shown := is.Suggestions
		if len(shown) > maxSugg {
			shown = shown[:maxSugg]
		}
		fmt.Fprintf(b, "%s predlogi: %s\n", prefix, pal.suggest.Sprint(strings.Join(shown, ", ")))
	}
}

func lineCount(f *source.File) uint32 {
	n := uint32(len(f.LineIdx)) // #nosec G115 -- line index fits uint32 by construction
	if len(f.Content) == 0 || f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return max(n, 1)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
