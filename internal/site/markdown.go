package site

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Profile copy may carry inline HTML (a <br> in the bio, a styled span in a
// service card). goldmark passes it through and bluemonday strips anything
// outside the UGC allow-list.
var (
	copyMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	copyPolicy = bluemonday.UGCPolicy()
)

// RenderMarkdown renders a bio or service description for the page.
// Blank input renders nothing.
func RenderMarkdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var out bytes.Buffer
	if err := copyMarkdown.Convert([]byte(src), &out); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(copyPolicy.SanitizeReader(&out).String())
}
