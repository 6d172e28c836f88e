// Package html finds WGSL inside <script> elements whose type attribute
// marks them as shader source, and reformats the script body in place.
package html

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"

	"bennypowers.dev/wgslfmt/internal/collections"
	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/host"
	"bennypowers.dev/wgslfmt/internal/printer"
	"bennypowers.dev/wgslfmt/internal/wgsl"
)

// Scanner handles parsing HTML to locate WGSL script elements.
type Scanner struct {
	parser      *sitter.Parser
	scriptQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// scannerPool is a pool of reusable HTML scanners
var scannerPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		scriptQuery, qerr := sitter.NewQuery(htmlLang, `
			(script_element
				(start_tag
					(attribute
						(attribute_name) @attr_name
						(quoted_attribute_value (attribute_value) @attr_value)))
				(raw_text) @text
				(#eq? @attr_name "type"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile script query: %v", qerr))
		}

		return &Scanner{
			parser:      parser,
			scriptQuery: scriptQuery,
		}
	},
}

// AcquireScanner gets a scanner from the pool
func AcquireScanner() *Scanner {
	s := scannerPool.Get().(*Scanner)
	s.parser.Reset()
	return s
}

// ReleaseScanner returns a scanner to the pool
func ReleaseScanner(s *Scanner) {
	if s != nil {
		scannerPool.Put(s)
	}
}

// Close closes the scanner and releases its resources
func (s *Scanner) Close() {
	if s.parser != nil {
		s.parser.Close()
	}
	if s.scriptQuery != nil {
		s.scriptQuery.Close()
	}
}

// ClosePool closes all scanners in the pool
func ClosePool() {
	for range 100 {
		if s, ok := scannerPool.Get().(*Scanner); ok && s != nil {
			s.Close()
		}
	}
}

// shaderType reports whether a script type attribute marks WGSL content.
// The x-shader family is accepted for parity with hand-rolled WebGPU
// sample pages.
func shaderType(value string) bool {
	switch value {
	case "text/wgsl", "application/wgsl":
		return true
	}
	return strings.HasPrefix(value, "x-shader")
}

// Format reformats every WGSL script element in HTML source. A script
// body that fails to parse as WGSL aborts the whole file.
func Format(source string, opts doc.Options) (string, error) {
	s := AcquireScanner()
	defer ReleaseScanner(s)

	patches, err := s.Scan(source, opts)
	if err != nil {
		return "", err
	}
	return host.Apply(source, patches)
}

// Scan locates WGSL script bodies and returns the patch list rewriting
// each with its canonical formatting.
func (s *Scanner) Scan(source string, opts doc.Options) ([]host.Patch, error) {
	sourceBytes := []byte(source)
	tree := s.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var patches []host.Patch
	seen := collections.NewSet[uint]()

	matches := cursor.Matches(s.scriptQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var attrValue string
		var textNode sitter.Node
		foundText := false

		for _, capture := range match.Captures {
			captureName := s.scriptQuery.CaptureNames()[capture.Index]
			switch captureName {
			case "attr_value":
				attrValue = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "text":
				textNode = capture.Node
				foundText = true
			}
		}

		if !foundText || !shaderType(attrValue) || seen.Has(textNode.StartByte()) {
			continue
		}
		seen.Add(textNode.StartByte())

		content := string(sourceBytes[textNode.StartByte():textNode.EndByte()])
		if strings.TrimSpace(content) == "" {
			continue
		}

		module, err := wgsl.Parse(content)
		if err != nil {
			return nil, err
		}
		formatted := doc.Resolve(printer.New(content).Module(module), opts)

		baseIndent := host.LineIndent(source, textNode.StartByte())
		indentUnit := strings.Repeat(" ", opts.IndentWidth)

		patches = append(patches, host.Patch{
			Start: textNode.StartByte(),
			End:   textNode.EndByte(),
			Text:  host.Reindent(formatted, baseIndent, indentUnit),
		})
	}

	return patches, nil
}
