// Package host holds the pieces shared by the embedded-snippet scanners:
// a byte-range patch list applied to host source text. Host syntax trees
// are read-only; all rewriting happens through patches.
package host

import (
	"fmt"
	"sort"
	"strings"
)

// Patch replaces the half-open byte range [Start, End) of the host source
// with Text.
type Patch struct {
	Start uint
	End   uint
	Text  string
}

// Apply rewrites source with every patch. Patches may arrive in any order
// but must not overlap; overlap means the scanner produced conflicting
// rewrites, which is a bug worth surfacing rather than papering over.
func Apply(source string, patches []Patch) (string, error) {
	if len(patches) == 0 {
		return source, nil
	}

	sorted := make([]Patch, len(patches))
	copy(sorted, patches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out strings.Builder
	var cursor uint
	for _, p := range sorted {
		if p.Start < cursor {
			return "", fmt.Errorf("host: overlapping patches at byte %d", p.Start)
		}
		if p.End > uint(len(source)) || p.Start > p.End {
			return "", fmt.Errorf("host: patch range [%d, %d) outside source of %d bytes", p.Start, p.End, len(source))
		}
		out.WriteString(source[cursor:p.Start])
		out.WriteString(p.Text)
		cursor = p.End
	}
	out.WriteString(source[cursor:])
	return out.String(), nil
}

// Reindent shapes formatted snippet text for splicing back between host
// delimiters. Single-line snippets stay inline. Multi-line snippets open
// with a newline, indent every line one level past the host line holding
// the opening delimiter, and close on a fresh line at the host indent so
// the closing delimiter lines up.
func Reindent(formatted, baseIndent, indentUnit string) string {
	body := strings.TrimRight(formatted, "\n")
	if !strings.Contains(body, "\n") {
		return body
	}

	lines := strings.Split(body, "\n")
	var out strings.Builder
	out.WriteString("\n")
	for _, line := range lines {
		if line != "" {
			out.WriteString(baseIndent)
			out.WriteString(indentUnit)
			out.WriteString(line)
		}
		out.WriteString("\n")
	}
	out.WriteString(baseIndent)
	return out.String()
}

// LineIndent returns the leading whitespace of the line containing byte
// offset in source.
func LineIndent(source string, offset uint) string {
	start := int(offset)
	if start > len(source) {
		start = len(source)
	}
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(source) && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	return source[start:end]
}
