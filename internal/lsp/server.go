// Package lsp serves lektor checks over the Language Server Protocol:
// diagnostics for open documents, quick fixes from suggestions and an
// add-to-dictionary command.
package lsp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"lektor/internal/check"
	"lektor/internal/diag"
	"lektor/internal/source"
	"lektor/internal/trace"
)

const (
	lsName = "lektor"

	// CommandAddToDictionary adds its single string argument to the user dictionary.
	CommandAddToDictionary = "lektor.addToDictionary"
)

// Checker runs one check over a document's text.
type Checker interface {
	Run(ctx context.Context, text string) (*check.Result, error)
}

// WordAdder accepts words into the live spelling lexicon.
type WordAdder interface {
	AddWord(word string)
}

// Dictionary persists user words.
type Dictionary interface {
	Add(word string) (bool, error)
}

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Checker        Checker
	Lexicon        WordAdder  // may be nil
	Dictionary     Dictionary // may be nil
	Debounce       time.Duration
	MaxDiagnostics int
	Version        string
	Tracer         trace.Tracer // may be nil
}

type docState struct {
	text    string
	version protocol.Integer
	gen     uint64
	file    *source.File
	issues  []diag.Issue
}

// Server handles stdio JSON-RPC for the lektor LSP.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	log     commonlog.Logger

	checker        Checker
	lexicon        WordAdder
	dictionary     Dictionary
	debounce       time.Duration
	maxDiagnostics int
	version        string

	mu      sync.Mutex
	docs    map[string]*docState
	timers  map[string]*time.Timer
	notify  glsp.NotifyFunc
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewServer constructs a new LSP server.
func NewServer(opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 500
	}
	ctx := context.Background()
	if opts.Tracer != nil {
		ctx = trace.WithTracer(ctx, opts.Tracer)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Server{
		log:            commonlog.GetLogger("lektor.lsp"),
		checker:        opts.Checker,
		lexicon:        opts.Lexicon,
		dictionary:     opts.Dictionary,
		debounce:       debounce,
		maxDiagnostics: maxDiagnostics,
		version:        opts.Version,
		docs:           make(map[string]*docState),
		timers:         make(map[string]*time.Timer),
		baseCtx:        ctx,
		cancel:         cancel,
	}
	s.handler = protocol.Handler{
		Initialize:              s.initialize,
		Initialized:             s.initialized,
		Shutdown:                s.shutdown,
		SetTrace:                s.setTrace,
		TextDocumentDidOpen:     s.didOpen,
		TextDocumentDidChange:   s.didChange,
		TextDocumentDidSave:     s.didSave,
		TextDocumentDidClose:    s.didClose,
		TextDocumentCodeAction:  s.codeAction,
		WorkspaceExecuteCommand: s.executeCommand,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves requests on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	defer s.cancel()
	return s.server.RunStdio()
}

func (s *Server) remember(ctx *glsp.Context) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	s.mu.Lock()
	s.notify = ctx.Notify
	s.mu.Unlock()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.remember(ctx)
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandAddToDictionary},
	}

	version := s.version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.remember(ctx)
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.mu.Lock()
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
	s.mu.Unlock()
	s.cancel()
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.remember(ctx)
	uri := params.TextDocument.URI
	s.mu.Lock()
	s.docs[uri] = &docState{
		text:    params.TextDocument.Text,
		version: params.TextDocument.Version,
	}
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.remember(ctx)
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &docState{}
		s.docs[uri] = doc
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.remember(ctx)
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok && params.Text != nil {
		doc.text = *params.Text
	}
	s.mu.Unlock()
	if ok {
		s.scheduleDiagnostics(uri)
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.remember(ctx)
	uri := params.TextDocument.URI
	s.mu.Lock()
	_, hadDoc := s.docs[uri]
	delete(s.docs, uri)
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	notify := s.notify
	s.mu.Unlock()
	if hadDoc {
		publish(notify, uri, nil, nil)
	}
	return nil
}

func (s *Server) executeCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	s.remember(ctx)
	switch params.Command {
	case CommandAddToDictionary:
		if len(params.Arguments) != 1 {
			return nil, fmt.Errorf("%s expects one argument, got %d", CommandAddToDictionary, len(params.Arguments))
		}
		word, ok := params.Arguments[0].(string)
		if !ok || word == "" {
			return nil, fmt.Errorf("%s expects a word", CommandAddToDictionary)
		}
		return nil, s.addToDictionary(word)
	}
	return nil, fmt.Errorf("unknown command %q", params.Command)
}

// addToDictionary persists word, teaches the live lexicon and re-checks
// every open document.
func (s *Server) addToDictionary(word string) error {
	if s.dictionary != nil {
		if _, err := s.dictionary.Add(word); err != nil {
			return fmt.Errorf("add %q to dictionary: %w", word, err)
		}
	}
	if s.lexicon != nil {
		s.lexicon.AddWord(word)
	}
	s.log.Infof("added %q to the user dictionary", word)

	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		s.scheduleDiagnostics(uri)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
