package lifecycle

import (
	"bennypowers.dev/wgslfmt/internal/host/html"
	"bennypowers.dev/wgslfmt/internal/host/js"
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
)

// Shutdown handles the LSP shutdown request
func Shutdown(ctx types.ServerContext, context *glsp.Context) error {
	log.Info("Server shutting down")

	// Release the pooled tree-sitter scanners
	js.ClosePool()
	html.ClosePool()

	return nil
}
