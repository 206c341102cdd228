package assistant

import (
	"bytes"
	"log"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitize = bluemonday.UGCPolicy()
)

// RenderHTML converts a Markdown reply to sanitized HTML. Model output is
// untrusted, so raw HTML in it never survives.
func RenderHTML(md string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		log.Printf("WARN [Assistant] RenderHTML: markdown conversion failed: %v", err)
		return sanitize.Sanitize(md)
	}
	return string(sanitize.SanitizeBytes(buf.Bytes()))
}
