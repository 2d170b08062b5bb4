package lsp

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const serverName = "swatch-lsp"

type Server struct {
	handler   protocol.Handler
	docs      *DocumentStore
	version   string
	verbosity int
	log       commonlog.Logger
}

func NewServer(version string, verbosity int) *Server {
	s := &Server{
		docs:      NewDocumentStore(),
		version:   version,
		verbosity: verbosity,
		log:       commonlog.GetLogger("swatch.lsp"),
	}

	s.handler = protocol.Handler{
		Initialize:                     s.initialize,
		Initialized:                    s.initialized,
		Shutdown:                       s.shutdown,
		SetTrace:                       s.setTrace,
		TextDocumentDidOpen:            s.textDocumentDidOpen,
		TextDocumentDidChange:          s.textDocumentDidChange,
		TextDocumentDidClose:           s.textDocumentDidClose,
		TextDocumentColor:              s.textDocumentDocumentColor,
		TextDocumentColorPresentation:  s.textDocumentColorPresentation,
		TextDocumentHover:              s.textDocumentHover,
		TextDocumentDefinition:         s.textDocumentDefinition,
		TextDocumentCompletion:         s.textDocumentCompletion,
		TextDocumentFormatting:         s.textDocumentFormatting,
		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
	}

	return s
}

func (s *Server) Run() error {
	commonlog.Configure(s.verbosity, nil)
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", "\""},
	}
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: semanticLegend(),
		Full:   true,
	}

	if params.ClientInfo != nil {
		s.log.Infof("initializing for %s", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	result := s.docs.Open(uri, params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri, result)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.publishDiagnostics(ctx, uri, s.docs.Update(uri, c.Text))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Close(uri)
	// Clear stale diagnostics for the closed file
	s.publishDiagnostics(ctx, uri, nil)
	return nil
}

// publishDiagnostics sends the analysis diagnostics for uri to the client.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string, result *AnalysisResult) {
	diagnostics := []protocol.Diagnostic{}
	if result != nil {
		diagnostics = append(diagnostics, result.Diagnostics...)
	}
	s.log.Debugf("%s: %d diagnostics", uri, len(diagnostics))

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diagnostics,
	})
}

// getResult returns the cached analysis for uri, or nil if it is not open.
func (s *Server) getResult(uri string) *AnalysisResult {
	return s.docs.Result(uri)
}
