package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"lektor/internal/diag"
	"lektor/internal/source"
)

type suggestionPreview struct {
	before []string
	after  []string
}

// buildSuggestionPreview shows the lines an issue touches before and after
// its first suggestion is applied.
func buildSuggestionPreview(fs *source.FileSet, is diag.Issue) (suggestionPreview, error) {
	if fs == nil {
		return suggestionPreview{}, fmt.Errorf("nil FileSet")
	}
	best, ok := is.Best()
	if !ok {
		return suggestionPreview{}, fmt.Errorf("issue %s has no suggestions", is.ID())
	}
	if int(is.Span.File) >= fs.Len() {
		return suggestionPreview{}, fmt.Errorf("file %d not found in FileSet", is.Span.File)
	}
	file := fs.Get(is.Span.File)

	startPos, endPos := fs.Resolve(is.Span)
	startLine := startPos.Line
	endLine := max(endPos.Line, startLine)

	blockStart := lineStartOffset(file, startLine)
	blockEnd := max(lineEndOffsetInclusive(file, endLine), blockStart)

	lenFileContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return suggestionPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	blockEnd = min(blockEnd, lenFileContent)

	original := file.Content[blockStart:blockEnd]
	relStart := int(is.Span.Start - blockStart)
	relEnd := int(is.Span.End - blockStart)
	if relStart < 0 || relStart > len(original) {
		return suggestionPreview{}, fmt.Errorf("span start %d out of range for preview block", relStart)
	}
	if relEnd < relStart || relEnd > len(original) {
		return suggestionPreview{}, fmt.Errorf("span end %d out of range for preview block", relEnd)
	}

	after := make([]byte, 0, len(original)+len(best))
	after = append(after, original[:relStart]...)
	after = append(after, best...)
	after = append(after, original[relEnd:]...)

	return suggestionPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	// хвостовой \n не даёт лишней пустой строки
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}
