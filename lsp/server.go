// Package lsp implements the wgslfmt language server: document sync,
// syntax diagnostics, and whole-document formatting over stdio.
package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/wgslfmt/internal/config"
	"bennypowers.dev/wgslfmt/internal/documents"
	hosthtml "bennypowers.dev/wgslfmt/internal/host/html"
	hostjs "bennypowers.dev/wgslfmt/internal/host/js"
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/lsp/methods/lifecycle"
	"bennypowers.dev/wgslfmt/lsp/methods/textDocument"
	"bennypowers.dev/wgslfmt/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/wgslfmt/lsp/methods/textDocument/formatting"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the wgslfmt language server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server
	context    *glsp.Context
	rootURI    string
	rootPath   string
	config     config.Config
	mu         sync.RWMutex // protects rootURI, rootPath, config, and context
}

// NewServer creates a new wgslfmt LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		config:    config.Default(),
	}

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:             method(s, "initialize", lifecycle.Initialize),
		Initialized:            notify(s, "initialized", lifecycle.Initialized),
		Shutdown:               noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:               notify(s, "$/setTrace", lifecycle.SetTrace),
		TextDocumentDidOpen:    notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:  notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:   notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentFormatting: method(s, "textDocument/formatting", formatting.Formatting),
	}

	s.glspServer = server.NewServer(&protocolHandler, "wgslfmt-language-server", false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources including the tree-sitter scanner pools.
// It is safe to call Close multiple times.
func (s *Server) Close() error {
	hostjs.ClosePool()
	hosthtml.ClosePool()
	return nil
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

// Config returns the active formatting configuration
func (s *Server) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the active formatting configuration
func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// GLSPContext returns the GLSP context.
func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// PublishDiagnostics publishes syntax diagnostics for a document
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	log.Debug("Publishing diagnostics for: %s", uri)

	// Use passed-in context if non-nil, otherwise the stored one
	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}
	if workingContext == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}
	if diagnostics == nil {
		return nil
	}

	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})

	return nil
}
