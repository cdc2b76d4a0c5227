// Package markdown renders converted HTML to Markdown for editors
// whose paste target is Markdown rather than rich text.
package markdown

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter wraps the html-to-markdown engine with this module's
// defaults. A Converter is safe for concurrent use.
type Converter struct {
	engine *md.Converter
}

// NewConverter builds a converter that translates the whole document
// with CommonMark defaults.
func NewConverter() *Converter {
	return &Converter{engine: md.NewConverter("", true, nil)}
}

// FromHTML renders HTML to Markdown.
func (c *Converter) FromHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := c.engine.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
