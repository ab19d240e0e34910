package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"lektor/internal/source"
)

func fileFor(text string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("doc.txt", []byte(text)))
}

func TestUTF16SpanMapping(t *testing.T) {
	src := strings.Join([]string{
		"Prva vrstica.",
		"Šla sem 🙂 k gospodu.",
		"",
	}, "\n")
	file := fileFor(src)

	start := strings.Index(src, "k gospodu")
	end := start + len("k gospodu")
	span := source.SpanOf(file.ID, start, end)

	got := rangeForSpan(file, span)
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 11},
		End:   protocol.Position{Line: 1, Character: 20},
	}
	if got != want {
		t.Fatalf("rangeForSpan = %+v, want %+v", got, want)
	}

	back := spanForRange(file, got)
	if back != span {
		t.Fatalf("spanForRange = %v, want %v", back, span)
	}
}

func TestOffsetForPositionClamps(t *testing.T) {
	src := "ena\ndva"
	file := fileFor(src)

	tests := []struct {
		name string
		pos  protocol.Position
		want uint32
	}{
		{"start", protocol.Position{Line: 0, Character: 0}, 0},
		{"past line end", protocol.Position{Line: 0, Character: 40}, 3},
		{"second line", protocol.Position{Line: 1, Character: 1}, 5},
		{"past last line", protocol.Position{Line: 9, Character: 0}, uint32(len(src))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offsetForPositionInFile(file, tt.pos); got != tt.want {
				t.Fatalf("offset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPositionInsideSurrogatePair(t *testing.T) {
	src := "a🙂b"
	file := fileFor(src)
	// character 2 points into the middle of the emoji and snaps back to it
	if got := offsetForPositionInFile(file, protocol.Position{Line: 0, Character: 2}); got != 1 {
		t.Fatalf("offset = %d, want 1", got)
	}
	if got := offsetForPositionInFile(file, protocol.Position{Line: 0, Character: 3}); got != 5 {
		t.Fatalf("offset = %d, want 5", got)
	}
}
