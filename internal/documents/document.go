package documents

import "fmt"

// Document is a text document open in the language server.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
}

func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

func (d *Document) URI() string        { return d.uri }
func (d *Document) LanguageID() string { return d.languageID }
func (d *Document) Version() int       { return d.version }
func (d *Document) Content() string    { return d.content }

// SetContent replaces the document's content. Updates older than the
// current version are rejected so out-of-order notifications cannot
// clobber newer content.
func (d *Document) SetContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}
