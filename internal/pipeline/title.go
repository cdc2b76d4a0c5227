package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// OutputPrefix marks converted files. Discovery skips files already
// carrying it, so a tree can be converted repeatedly without the
// outputs feeding back in as inputs.
const OutputPrefix = "CONVERTED - "

// fallbackBaseName is the last-resort output name when neither the
// title nor the source file name yields usable characters.
const fallbackBaseName = "untitled"

// TitleNamer defines the contract for title extraction and converted
// file naming.
type TitleNamer interface {
	Title(content string) (string, bool)
	OutputName(title, sourceName string) string
}

// ExportTitleNamer reads the exported page title and derives the
// converted file name from it. Space exports title pages as
// "Space Name : Page Title"; the space prefix is dropped.
type ExportTitleNamer struct{}

// NewExportTitleNamer creates an ExportTitleNamer.
func NewExportTitleNamer() *ExportTitleNamer {
	return &ExportTitleNamer{}
}

// Title returns the page title and whether a usable one was found.
// Parsing is tolerant: exports are real-world HTML, not validated
// documents.
func (t *ExportTitleNamer) Title(content string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", false
	}
	title := pageTitle(strings.TrimSpace(findTitle(doc)))
	return title, title != ""
}

// OutputName derives the converted file name. A missing or empty title
// falls back to the sanitized source file name, then to a fixed name.
func (t *ExportTitleNamer) OutputName(title, sourceName string) string {
	name := sanitizeName(title)
	if name == "" {
		base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
		name = sanitizeName(base)
	}
	if name == "" {
		name = fallbackBaseName
	}
	return OutputPrefix + name + ".html"
}

// findTitle walks the tree for the first <title> element's text.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// pageTitle strips the space-name prefix. Titles without a colon are
// used whole.
func pageTitle(raw string) string {
	if _, after, ok := strings.Cut(raw, ":"); ok {
		return strings.TrimSpace(after)
	}
	return raw
}

var (
	invalidNameChars = regexp.MustCompile(`[^\w \-]`)
	nameSpaceRuns    = regexp.MustCompile(`\s+`)
	nameHyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// sanitizeName reduces a title to filesystem-safe hyphenated words.
func sanitizeName(s string) string {
	s = invalidNameChars.ReplaceAllString(s, "")
	s = nameSpaceRuns.ReplaceAllString(s, "-")
	s = nameHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
