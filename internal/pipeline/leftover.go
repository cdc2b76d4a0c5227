package pipeline

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Leftover is a source-platform construct that survived conversion
// unrecognized.
type Leftover struct {
	Construct string
	Snippet   string
}

// LeftoverScanner defines the contract for post-conversion residue
// scans.
type LeftoverScanner interface {
	Scan(ctx context.Context, content string) []Leftover
}

// SelectorScanner finds surviving export markup by CSS selector. It is
// how constructs the rewrite rules skipped become visible instead of
// silently shipping in the output.
type SelectorScanner struct{}

// NewSelectorScanner creates a SelectorScanner.
func NewSelectorScanner() *SelectorScanner {
	return &SelectorScanner{}
}

// leftoverSelectors maps construct names to the selectors identifying
// them. Ordered so reports are stable.
var leftoverSelectors = []struct {
	construct string
	selector  string
}{
	{"information macro", "div.confluence-information-macro"},
	{"expand macro", "div.expand-container"},
	{"emoticon image", "img[data-emoticon-name]"},
	{"breadcrumb", "div#breadcrumb-section"},
	{"page metadata", "div.page-metadata"},
	{"code macro", "pre.syntaxhighlighter-pre"},
	{"attachments section", "h2#attachments"},
	{"export footer", "section.footer-body"},
	{"embedded file wrapper", "span.confluence-embedded-file-wrapper"},
}

// snippetRunes caps reported snippets so one large surviving block does
// not swamp a report.
const snippetRunes = 120

// Scan reports every surviving export construct with a short snippet.
func (s *SelectorScanner) Scan(ctx context.Context, content string) []Leftover {
	if ctx.Err() != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var found []Leftover
	for _, ls := range leftoverSelectors {
		doc.Find(ls.selector).Each(func(_ int, sel *goquery.Selection) {
			snippet, _ := goquery.OuterHtml(sel)
			found = append(found, Leftover{
				Construct: ls.construct,
				Snippet:   truncateSnippet(snippet),
			})
		})
	}
	return found
}

// truncateSnippet squeezes whitespace and caps length.
func truncateSnippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= snippetRunes {
		return s
	}
	return string(runes[:snippetRunes]) + "…"
}
