package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lektor/internal/diag"
	"lektor/internal/source"
)

// codeAction offers one quick fix per shown suggestion of every issue the
// requested range touches, plus "add to dictionary" for unknown words.
func (s *Server) codeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	s.remember(ctx)
	uri := params.TextDocument.URI

	s.mu.Lock()
	doc, ok := s.docs[uri]
	var (
		file   *source.File
		issues []diag.Issue
	)
	if ok {
		file, issues = doc.file, doc.issues
	}
	s.mu.Unlock()
	if file == nil {
		return nil, nil
	}

	want := spanForRange(file, params.Range)
	actions := make([]protocol.CodeAction, 0)
	for _, is := range issues {
		if !touches(is.Span, want) {
			continue
		}
		actions = append(actions, s.actionsFor(uri, file, is)...)
	}
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

// touches is Overlaps that also accepts a caret (empty range) at either edge.
func touches(issue, want source.Span) bool {
	if want.Empty() {
		return issue.Start <= want.Start && want.Start <= issue.End
	}
	return issue.Overlaps(want)
}

func (s *Server) actionsFor(uri string, file *source.File, is diag.Issue) []protocol.CodeAction {
	d := toDiagnostic(file, is)
	kind := protocol.CodeActionKindQuickFix
	rng := rangeForSpan(file, is.Span)

	shown := is.Shown()
	out := make([]protocol.CodeAction, 0, len(shown)+1)
	for i, sugg := range shown {
		action := protocol.CodeAction{
			Title:       fmt.Sprintf("Zamenjaj z »%s«", sugg),
			Kind:        &kind,
			Diagnostics: []protocol.Diagnostic{d},
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{
					uri: {{Range: rng, NewText: sugg}},
				},
			},
		}
		if i == 0 && is.Applicability() == diag.ApplicabilityAlwaysSafe {
			action.IsPreferred = boolPtr(true)
		}
		out = append(out, action)
	}

	if is.Category() == diag.CatSpelling && s.dictionary != nil {
		title := fmt.Sprintf("Dodaj »%s« v slovar", is.Matched)
		out = append(out, protocol.CodeAction{
			Title:       title,
			Kind:        &kind,
			Diagnostics: []protocol.Diagnostic{d},
			Command: &protocol.Command{
				Title:     title,
				Command:   CommandAddToDictionary,
				Arguments: []any{is.Matched},
			},
		})
	}
	return out
}
