package format

import (
	"bennypowers.dev/wgslfmt/internal/doc"
	hosthtml "bennypowers.dev/wgslfmt/internal/host/html"
	hostjs "bennypowers.dev/wgslfmt/internal/host/js"
)

func formatJS(source string, opts doc.Options) (string, error) {
	return hostjs.Format(source, opts)
}

func formatHTML(source string, opts doc.Options) (string, error) {
	return hosthtml.Format(source, opts)
}
