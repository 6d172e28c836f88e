// Package textDocument implements document synchronization handlers.
package textDocument

import (
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(ctx types.ServerContext, context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debug("Document opened: %s (language: %s, version: %d)",
		params.TextDocument.URI, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	err := ctx.DocumentManager().DidOpen(params.TextDocument.URI, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)
	if err != nil {
		return err
	}

	if err := ctx.PublishDiagnostics(context, params.TextDocument.URI); err != nil {
		log.Warn("Failed to publish diagnostics for %s: %v", params.TextDocument.URI, err)
	}

	return nil
}

// DidChange handles the textDocument/didChange notification
func DidChange(ctx types.ServerContext, context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	// Convert any[] to proper type, filtering out invalid entries
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		if changeEvent, ok := change.(protocol.TextDocumentContentChangeEvent); ok {
			changes = append(changes, changeEvent)
		}
	}

	err := ctx.DocumentManager().DidChange(uri, version, changes)
	if err != nil {
		return err
	}

	if err := ctx.PublishDiagnostics(context, uri); err != nil {
		log.Warn("Failed to publish diagnostics for %s: %v", uri, err)
	}

	return nil
}

// DidClose handles the textDocument/didClose notification
func DidClose(ctx types.ServerContext, context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	log.Debug("Document closed: %s", uri)

	return ctx.DocumentManager().DidClose(uri)
}
