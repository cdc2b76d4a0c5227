package report

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates report HTML rendering failed.
var ErrRender = errors.New("report rendering failed")

// htmlTemplate wraps goldmark's fragment output in a complete HTML5
// document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Conversion report</title>
</head>
<body>
%s
</body>
</html>`

// RenderHTML renders the Markdown report as a standalone HTML document.
// Fenced leftover snippets get chroma classes so a stylesheet can
// highlight them.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return fmt.Sprintf(htmlTemplate, buf.String()), nil
}
