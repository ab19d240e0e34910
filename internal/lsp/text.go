package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lektor/internal/source"
)

// applyChanges folds didChange events into text. Full replacements and
// ranged edits are both accepted even though the server asks for full sync.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("", []byte(text)))
			span := spanForRange(file, *c.Range)
			text = text[:span.Start] + c.Text + text[span.End:]
		}
	}
	return text
}
