// Package lifecycle implements the LSP lifecycle methods.
package lifecycle

import (
	"bennypowers.dev/wgslfmt/internal/config"
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/internal/uriutil"
	"bennypowers.dev/wgslfmt/internal/version"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialize handles the LSP initialize request
func Initialize(ctx types.ServerContext, context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	if params.RootURI != nil {
		ctx.SetRootURI(*params.RootURI)
		ctx.SetRootPath(uriutil.URIToPath(*params.RootURI))
		log.Info("Workspace root: %s", ctx.RootPath())
	} else if params.RootPath != nil {
		ctx.SetRootPath(*params.RootPath)
		ctx.SetRootURI(uriutil.PathToURI(*params.RootPath))
		log.Info("Workspace root (from rootPath): %s", ctx.RootPath())
	}

	// Load project formatting options now that the root is known
	cfg, err := config.Load(ctx.RootPath())
	if err != nil {
		log.Warn("Failed to load project config, using defaults: %v", err)
		cfg = config.Default()
	}
	ctx.SetConfig(cfg)

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		DocumentFormattingProvider: true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "wgslfmt-language-server",
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
