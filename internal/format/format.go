// Package format is the entry point tying the WGSL pipeline together:
// parse, print to a document tree, resolve to text. It also dispatches
// whole files by extension to the embedded-snippet scanners.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/printer"
	"bennypowers.dev/wgslfmt/internal/wgsl"
)

// Format renders WGSL source in canonical layout. A parse failure aborts
// the whole input; there is no partial output.
func Format(source string, opts doc.Options) (string, error) {
	module, err := wgsl.Parse(source)
	if err != nil {
		return "", err
	}
	fragment := printer.New(source).Module(module)
	return doc.Resolve(fragment, opts), nil
}

// jsExtensions lists the host extensions handled by the JavaScript
// embedding scanner. TypeScript sources parse with the same grammar for
// the constructs the scanner queries.
var jsExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// FormatFile formats source according to the file's extension: WGSL files
// go through the core pipeline, host-language files through the embedding
// scanners. Unknown extensions are an error rather than a silent no-op.
func FormatFile(path string, source string, opts doc.Options) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".wgsl":
		return Format(source, opts)
	case jsExtensions[ext]:
		return formatJS(source, opts)
	case ext == ".html" || ext == ".htm":
		return formatHTML(source, opts)
	default:
		return "", fmt.Errorf("format: unsupported file type %q", ext)
	}
}
