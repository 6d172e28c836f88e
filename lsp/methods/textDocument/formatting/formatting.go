// Package formatting implements textDocument/formatting over the WGSL
// pipeline and the embedded-snippet scanners.
package formatting

import (
	"strings"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/format"
	hosthtml "bennypowers.dev/wgslfmt/internal/host/html"
	hostjs "bennypowers.dev/wgslfmt/internal/host/js"
	"bennypowers.dev/wgslfmt/internal/log"
	"bennypowers.dev/wgslfmt/internal/position"
	"bennypowers.dev/wgslfmt/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formatting handles the textDocument/formatting request. The whole
// document is replaced with one edit; clients diff internally.
func Formatting(ctx types.ServerContext, context *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	document := ctx.Document(uri)
	if document == nil {
		log.Warn("Formatting requested for unknown document: %s", uri)
		return nil, nil
	}

	opts := ctx.Config().Options()
	// The client's tab size wins over project config for this request.
	// FormattingOptions is an untyped map; JSON numbers arrive as float64.
	if tabSize, ok := params.Options[protocol.FormattingOptionTabSize].(float64); ok && tabSize > 0 {
		opts.IndentWidth = int(tabSize)
	}

	content := document.Content()
	formatted, err := formatDocument(document.LanguageID(), uri, content, opts)
	if err != nil {
		return nil, err
	}

	if formatted == content {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{
		{
			Range:   fullRange(content),
			NewText: formatted,
		},
	}, nil
}

// formatDocument picks the pipeline from the language identifier, falling
// back to the file extension for clients that send nonstandard IDs.
func formatDocument(languageID, uri, content string, opts doc.Options) (string, error) {
	switch languageID {
	case "wgsl":
		return format.Format(content, opts)
	case "javascript", "javascriptreact", "typescript", "typescriptreact":
		return hostjs.Format(content, opts)
	case "html":
		return hosthtml.Format(content, opts)
	default:
		return format.FormatFile(uri, content, opts)
	}
}

// fullRange spans the entire document content in LSP coordinates.
func fullRange(content string) protocol.Range {
	lines := strings.Split(content, "\n")
	lastLine := lines[len(lines)-1]
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End: protocol.Position{
			Line:      uint32(len(lines) - 1),
			Character: uint32(position.StringLengthUTF16(lastLine)),
		},
	}
}
