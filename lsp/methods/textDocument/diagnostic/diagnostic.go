// Package diagnostic derives parse-error diagnostics for WGSL documents.
package diagnostic

import (
	"errors"
	"strings"

	"bennypowers.dev/wgslfmt/internal/position"
	"bennypowers.dev/wgslfmt/internal/wgsl"
	"bennypowers.dev/wgslfmt/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const source = "wgslfmt"

// GetDiagnostics parses a WGSL document and reports syntax errors. Host
// language documents get no diagnostics here; their own tooling owns
// those.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	doc := ctx.Document(uri)
	if doc == nil {
		return nil, nil
	}
	if !isWGSL(doc.LanguageID(), uri) {
		return []protocol.Diagnostic{}, nil
	}

	_, err := wgsl.Parse(doc.Content())
	if err == nil {
		// An empty slice clears previously published diagnostics
		return []protocol.Diagnostic{}, nil
	}

	var parseErr wgsl.ParseError
	if !errors.As(err, &parseErr) {
		return nil, err
	}

	severity := protocol.DiagnosticSeverityError
	return []protocol.Diagnostic{
		{
			Range:    errorRange(doc.Content(), parseErr),
			Severity: &severity,
			Source:   strPtr(source),
			Message:  parseErr.Message,
		},
	}, nil
}

// errorRange converts the failing token's byte span to a 0-based LSP
// range covering the token text. The lexer counts columns in runes, so
// the range is derived from byte offsets and converted to the UTF-16
// code units LSP positions use.
func errorRange(content string, parseErr wgsl.ParseError) protocol.Range {
	line := 0
	if parseErr.Token.Line > 0 {
		line = parseErr.Token.Line - 1
	}

	lines := strings.Split(content, "\n")
	if line >= len(lines) {
		line = len(lines) - 1
	}
	lineStart := 0
	for i := 0; i < line; i++ {
		lineStart += len(lines[i]) + 1
	}

	start := position.ByteOffsetToUTF16(lines[line], parseErr.Token.Start-lineStart)
	end := position.ByteOffsetToUTF16(lines[line], parseErr.Token.End-lineStart)
	if end <= start {
		// Zero-width token, typically end of input
		end = start + 1
	}

	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(start)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(end)},
	}
}

func isWGSL(languageID, uri string) bool {
	return languageID == "wgsl" || strings.HasSuffix(uri, ".wgsl")
}

func strPtr(s string) *string {
	return &s
}
