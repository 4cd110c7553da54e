package server

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Replies put one item per line, so soft line breaks stay visible. Raw HTML
// in the source is not passed through.
var replyMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// renderReply turns a chat reply into HTML for the web widget.
func renderReply(text string) template.HTML {
	var buf bytes.Buffer
	if err := replyMarkdown.Convert([]byte(text), &buf); err != nil {
		logger.Warn().Err(err).Msg("rendering reply markdown")
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
