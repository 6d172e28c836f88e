package lifecycle

import (
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(ctx types.ServerContext, context *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Store context for later use (diagnostics)
	ctx.SetGLSPContext(context)

	return nil
}
