// Package uriutil converts between file system paths and file:// URIs,
// covering POSIX paths, Windows drive letters, and UNC shares.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI converts a file system path to a file:// URI. The path is
// made absolute and each segment is percent-encoded:
//
//	/home/user/shaders -> file:///home/user/shaders
//	C:\shaders         -> file:///C:/shaders
//	\\server\share     -> file://server/share
func PathToURI(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(absPath, `\\`) {
		uncPath := filepath.ToSlash(strings.TrimPrefix(absPath, `\\`))
		return "file://" + encodeSegments(uncPath)
	}

	absPath = filepath.ToSlash(absPath)
	// Drive-letter paths need a leading slash: C:/x -> /C:/x
	if !strings.HasPrefix(absPath, "/") {
		absPath = "/" + absPath
	}
	return "file://" + encodeSegments(absPath)
}

func encodeSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" {
			segments[i] = url.PathEscape(seg)
		}
	}
	return strings.Join(segments, "/")
}

// URIToPath converts a file:// URI back to a file system path,
// percent-decoding segments and restoring OS separators. A URI with a
// host becomes a UNC path on Windows.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uriFallback(uri)
	}

	if parsed.Host != "" {
		if runtime.GOOS == "windows" {
			host, _ := url.PathUnescape(parsed.Host)
			pathDecoded, _ := url.PathUnescape(parsed.Path)
			return `\\` + host + strings.ReplaceAll(pathDecoded, "/", `\`)
		}
		return parsed.Host + parsed.Path
	}

	decodedPath, err := url.PathUnescape(parsed.Path)
	if err != nil {
		decodedPath = parsed.Path
	}
	return filepath.FromSlash(stripDriveSlash(decodedPath))
}

// uriFallback handles URIs url.Parse rejects, leniently.
func uriFallback(uri string) string {
	path := uri
	if strings.HasPrefix(path, "file://") {
		path = path[7:]
	}
	return filepath.FromSlash(stripDriveSlash(path))
}

// stripDriveSlash turns /C:/shaders into C:/shaders.
func stripDriveSlash(path string) string {
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		return path[1:]
	}
	return path
}
