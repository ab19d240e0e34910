package diagfmt

import (
	"encoding/json"
	"io"

	"lektor/internal/diag"
	"lektor/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// PreviewJSON показывает строки до и после первого предложения
type PreviewJSON struct {
	BeforeLines []string `json:"before_lines"`
	AfterLines  []string `json:"after_lines"`
}

// IssueJSON представляет одну находку в JSON формате
type IssueJSON struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	Category      string       `json:"category"`
	Severity      string       `json:"severity"`
	Applicability string       `json:"applicability"`
	PhraseLevel   bool         `json:"phrase_level"`
	Matched       string       `json:"matched"`
	Message       string       `json:"message"`
	Suggestions   []string     `json:"suggestions"`
	Location      LocationJSON `json:"location"`
	Preview       *PreviewJSON `json:"preview,omitempty"`
}

// IssuesOutput представляет корневую структуру JSON вывода
type IssuesOutput struct {
	Issues       []IssueJSON `json:"issues"`
	Count        int         `json:"count"`
	GrammarCount int         `json:"grammar_count"`
	SpellCount   int         `json:"spell_count"`
	Summary      string      `json:"summary"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if int(span.File) >= fs.Len() {
		return loc
	}
	loc.File = pathMode.format(fs, fs.Get(span.File))

	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildIssuesOutput формирует структуру JSON-вывода без сериализации.
// Счётчики считаются по всему Bag, даже если список обрезан opts.Max.
func BuildIssuesOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) IssuesOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	issues := make([]IssueJSON, 0, maxItems)
	for i := range maxItems {
		is := items[i]
		suggestions := is.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		out := IssueJSON{
			ID:            is.ID(),
			Code:          is.Code.ID(),
			Category:      is.Category().String(),
			Severity:      is.Severity().Label(),
			Applicability: is.Applicability().String(),
			PhraseLevel:   is.IsPhraseLevel(),
			Matched:       is.Matched,
			Message:       is.Message(),
			Suggestions:   suggestions,
			Location:      makeLocation(is.Span, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludePreviews {
			if preview, err := buildSuggestionPreview(fs, is); err == nil {
				out.Preview = &PreviewJSON{BeforeLines: preview.before, AfterLines: preview.after}
			}
		}
		issues = append(issues, out)
	}

	grammar, spelling := bag.Counts()
	return IssuesOutput{
		Issues:       issues,
		Count:        len(issues),
		GrammarCount: grammar,
		SpellCount:   spelling,
		Summary:      diag.Summary(grammar, spelling),
	}
}

// JSON форматирует находки в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildIssuesOutput(bag, fs, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}
