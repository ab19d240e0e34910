package lsp

import (
	"context"
	"errors"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lektor/internal/diag"
	"lektor/internal/source"
	"lektor/internal/trace"
)

// scheduleDiagnostics (re)starts the debounce timer of uri. Only the newest
// generation of a document is published.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	doc.gen++
	gen := doc.gen
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri, gen)
	})
}

func (s *Server) runDiagnostics(uri string, gen uint64) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok || doc.gen != gen {
		s.mu.Unlock()
		return
	}
	text := doc.text
	version := doc.version
	s.mu.Unlock()

	ctx, span := trace.Start(s.baseCtx, trace.ScopeRun, "lsp-check")
	res, err := s.checker.Run(ctx, text)
	span.End(uri)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Errorf("check %s: %s", uri, err)
		}
		return
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.Add(displayName(uri), []byte(text), source.FileVirtual))
	issues := res.Issues
	if len(issues) > s.maxDiagnostics {
		issues = issues[:s.maxDiagnostics]
	}

	s.mu.Lock()
	doc, ok = s.docs[uri]
	if !ok || doc.gen != gen {
		s.mu.Unlock()
		return
	}
	doc.file = file
	doc.issues = issues
	notify := s.notify
	s.mu.Unlock()

	list := make([]protocol.Diagnostic, 0, len(issues))
	for _, is := range issues {
		list = append(list, toDiagnostic(file, is))
	}
	s.log.Debugf("%s: %s", uri, res.Summary())
	publish(notify, uri, &version, list)
}

func publish(notify glsp.NotifyFunc, uri string, version *protocol.Integer, list []protocol.Diagnostic) {
	if notify == nil {
		return
	}
	if list == nil {
		list = []protocol.Diagnostic{}
	}
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: list,
	}
	if version != nil && *version >= 0 {
		v := protocol.UInteger(*version)
		params.Version = &v
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func toDiagnostic(file *source.File, is diag.Issue) protocol.Diagnostic {
	severity := severityFor(is.Severity())
	src := lsName
	return protocol.Diagnostic{
		Range:    rangeForSpan(file, is.Span),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: is.Code.ID()},
		Source:   &src,
		Message:  is.Message(),
		Data:     is.ID(),
	}
}

func severityFor(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
