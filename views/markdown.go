package views

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))

	// policy strips scripts, handlers and unsafe URLs from operator-written HTML.
	policy = bluemonday.UGCPolicy()
)

// renderMarkdown writes operator-supplied markdown as sanitized HTML.
func renderMarkdown(buf *bytes.Buffer, src string) error {
	var raw bytes.Buffer
	if err := md.Convert([]byte(src), &raw); err != nil {
		return err
	}
	buf.Write(policy.SanitizeBytes(raw.Bytes()))
	return nil
}
