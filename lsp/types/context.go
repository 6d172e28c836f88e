// Package types holds the context surface shared by LSP method handlers.
package types

import (
	"bennypowers.dev/wgslfmt/internal/config"
	"bennypowers.dev/wgslfmt/internal/documents"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers. Handlers
// depend on this interface rather than the server struct, which keeps them
// testable with a stub context.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	Config() config.Config
	SetConfig(cfg config.Config)

	// LSP context (for publishing diagnostics, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics publishing
	PublishDiagnostics(context *glsp.Context, uri string) error
}
