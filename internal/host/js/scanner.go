// Package js finds WGSL snippets embedded in JavaScript and TypeScript
// template literals and reformats them in place.
//
// Two discovery modes exist. A template tagged with the bare identifier
// wgsl is always a candidate. If any comment in the file has trimmed text
// exactly "wgsl", every template literal in the file becomes a candidate;
// the pragma is a file-scoped switch, not attached to a particular
// literal.
package js

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/host"
	"bennypowers.dev/wgslfmt/internal/printer"
	"bennypowers.dev/wgslfmt/internal/wgsl"
)

// Scanner handles parsing JS/TS to locate WGSL template literals.
type Scanner struct {
	parser        *sitter.Parser
	taggedQuery   *sitter.Query
	templateQuery *sitter.Query
	commentQuery  *sitter.Query
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// scannerPool is a pool of reusable JS scanners
var scannerPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		taggedQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile tagged template query: %v", qerr))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `(template_string) @template`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		commentQuery, qerr := sitter.NewQuery(jsLang, `(comment) @comment`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile comment query: %v", qerr))
		}

		return &Scanner{
			parser:        parser,
			taggedQuery:   taggedQuery,
			templateQuery: templateQuery,
			commentQuery:  commentQuery,
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
	if s.taggedQuery != nil {
		s.taggedQuery.Close()
	}
	if s.templateQuery != nil {
		s.templateQuery.Close()
	}
	if s.commentQuery != nil {
		s.commentQuery.Close()
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

// Format reformats every qualifying WGSL snippet in JS/TS source, leaving
// the surrounding host syntax untouched. A snippet that fails to parse as
// WGSL aborts the whole file.
func Format(source string, opts doc.Options) (string, error) {
	s := AcquireScanner()
	defer ReleaseScanner(s)

	patches, err := s.Scan(source, opts)
	if err != nil {
		return "", err
	}
	return host.Apply(source, patches)
}

// Scan locates qualifying snippets and returns the patch list that
// rewrites each one with its canonical formatting.
func (s *Scanner) Scan(source string, opts doc.Options) ([]host.Patch, error) {
	sourceBytes := []byte(source)
	tree := s.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	root := tree.RootNode()

	var templates []sitter.Node
	if s.hasPragma(root, sourceBytes) {
		templates = s.allTemplates(root, sourceBytes)
	} else {
		templates = s.taggedTemplates(root, sourceBytes)
	}

	var patches []host.Patch
	for i := range templates {
		patch, ok, err := s.snippetPatch(&templates[i], source, sourceBytes, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			patches = append(patches, patch)
		}
	}
	return patches, nil
}

// hasPragma reports whether any comment in the file trims to exactly
// "wgsl".
func (s *Scanner) hasPragma(root *sitter.Node, sourceBytes []byte) bool {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(s.commentQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			text := string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			if commentText(text) == "wgsl" {
				return true
			}
		}
	}
	return false
}

// commentText strips comment delimiters and surrounding whitespace.
func commentText(raw string) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return strings.TrimSpace(raw[2:])
	case strings.HasPrefix(raw, "/*") && strings.HasSuffix(raw, "*/") && len(raw) >= 4:
		return strings.TrimSpace(raw[2 : len(raw)-2])
	default:
		return strings.TrimSpace(raw)
	}
}

// taggedTemplates finds template literals tagged with the wgsl identifier.
func (s *Scanner) taggedTemplates(root *sitter.Node, sourceBytes []byte) []sitter.Node {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var templates []sitter.Node
	matches := cursor.Matches(s.taggedQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode sitter.Node
		foundTemplate := false

		for _, capture := range match.Captures {
			captureName := s.taggedQuery.CaptureNames()[capture.Index]
			switch captureName {
			case "tag":
				tagName = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "template":
				templateNode = capture.Node
				foundTemplate = true
			}
		}

		if tagName == "wgsl" && foundTemplate {
			templates = append(templates, templateNode)
		}
	}
	return templates
}

// allTemplates finds every template literal in the file, for pragma mode.
func (s *Scanner) allTemplates(root *sitter.Node, sourceBytes []byte) []sitter.Node {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var templates []sitter.Node
	matches := cursor.Matches(s.templateQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			templates = append(templates, capture.Node)
		}
	}
	return templates
}

// snippetPatch reformats one candidate template literal. Literals with
// interpolation holes are skipped, not errored: splicing formatted WGSL
// around host expressions is not well-defined.
func (s *Scanner) snippetPatch(template *sitter.Node, source string, sourceBytes []byte, opts doc.Options) (host.Patch, bool, error) {
	fragment, ok := singleFragment(template)
	if !ok {
		return host.Patch{}, false, nil
	}

	content := string(sourceBytes[fragment.StartByte():fragment.EndByte()])
	formatted, err := formatSnippet(content, opts)
	if err != nil {
		return host.Patch{}, false, err
	}

	baseIndent := host.LineIndent(source, template.StartByte())
	indentUnit := strings.Repeat(" ", opts.IndentWidth)

	return host.Patch{
		Start: fragment.StartByte(),
		End:   fragment.EndByte(),
		Text:  host.Reindent(formatted, baseIndent, indentUnit),
	}, true, nil
}

// singleFragment returns the template's sole static text segment, or
// reports false when the literal is empty or interpolated.
func singleFragment(template *sitter.Node) (*sitter.Node, bool) {
	var fragment *sitter.Node
	for i := uint(0); i < template.ChildCount(); i++ {
		child := template.Child(i)
		switch child.Kind() {
		case "template_substitution":
			return nil, false
		case "string_fragment":
			if fragment != nil {
				return nil, false
			}
			fragment = child
		}
	}
	return fragment, fragment != nil
}

// formatSnippet runs the WGSL pipeline directly. The scanner has no
// asynchronous re-entry into a surrounding formatter, so parse, print,
// and layout resolution all happen synchronously here.
func formatSnippet(content string, opts doc.Options) (string, error) {
	module, err := wgsl.Parse(content)
	if err != nil {
		return "", err
	}
	fragment := printer.New(content).Module(module)
	return doc.Resolve(fragment, opts), nil
}
