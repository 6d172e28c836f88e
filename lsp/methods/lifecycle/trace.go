package lifecycle

import (
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification
func SetTrace(ctx types.ServerContext, context *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debug("Trace level set to: %s", params.Value)
	return nil
}
