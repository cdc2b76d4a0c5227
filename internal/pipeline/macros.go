package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// MacroRewriter defines the contract for export macro rewriting.
type MacroRewriter interface {
	Rewrite(ctx context.Context, content string) string
}

// RewriteRule is one export-construct transformation. Rules are built
// once per rewriter and never mutated afterward; Rewrite applies them
// in declared order. A FixedPoint rule rewrites one block per pass and
// repeats until the document stops changing.
type RewriteRule struct {
	Name       string
	FixedPoint bool
	apply      func(content string) (string, bool)
}

// replaceAll builds a rule from a pattern and a replacement template.
func replaceAll(name, pattern, template string) RewriteRule {
	re := regexp.MustCompile(pattern)
	return RewriteRule{
		Name: name,
		apply: func(content string) (string, bool) {
			out := re.ReplaceAllString(content, template)
			return out, out != content
		},
	}
}

// replaceAllFunc builds a rule whose replacement is computed from the
// submatches. The returned text is inserted literally, so matched
// document content never reaches template expansion.
func replaceAllFunc(name, pattern string, fn func(m []string) string) RewriteRule {
	re := regexp.MustCompile(pattern)
	return RewriteRule{
		Name: name,
		apply: func(content string) (string, bool) {
			out := re.ReplaceAllStringFunc(content, func(match string) string {
				return fn(re.FindStringSubmatch(match))
			})
			return out, out != content
		},
	}
}

// ExportRewriter applies the ordered macro rule list to one document.
type ExportRewriter struct {
	rules []RewriteRule
}

// NewExportRewriter builds the immutable rule list. noteDate is the
// already-resolved date text for the conversion note; languages maps
// lowercased brush names to code classes ahead of the lexer registry.
func NewExportRewriter(noteDate string, languages map[string]string) *ExportRewriter {
	return &ExportRewriter{rules: buildRules(noteDate, languages)}
}

// Rewrite applies every rule in declared order. Constructs no rule
// recognizes pass through unmodified; the leftover scan surfaces them.
func (r *ExportRewriter) Rewrite(ctx context.Context, content string) string {
	for _, rule := range r.rules {
		if ctx.Err() != nil {
			return content
		}
		if rule.FixedPoint {
			for {
				next, changed := rule.apply(content)
				if !changed {
					break
				}
				content = next
			}
			continue
		}
		content, _ = rule.apply(content)
	}
	return content
}

// buildRules declares the transformation order. Order is part of the
// contract: checkbox rules run after the embedded-image rule so plain
// emoticon images are still distinguishable, and boilerplate removal
// runs last over whatever the content rules produced.
func buildRules(noteDate string, languages map[string]string) []RewriteRule {
	return []RewriteRule{
		calloutRule(),
		replaceAll("expand-macro",
			`(?s)<div id="expander-\d+" class="expand-container"\s*>\s*`+
				`<div id="expander-control-\d+" class="expand-control"\s*>`+
				`(?:<span class="expand-control-icon[^"]*"\s*>\s*</span>)?\s*`+
				`<span class="expand-control-text"\s*>(.*?)</span>\s*</div>\s*`+
				`<div id="expander-content-\d+" class="expand-content"\s*>(.*?)</div>\s*</div>`,
			`<details><summary>${1}</summary>${2}</details>`),
		replaceAll("embedded-image",
			`<span class="confluence-embedded-file-wrapper[^"]*"\s*>\s*`+
				`<img[^>]*height="(\d+)"[^>]*width="(\d+)"[^>]*src="([^"]+)"[^>]*>\s*</span>`,
			placeholderStart+`img|${3}|${1}|${2}`+placeholderEnd),
		replaceAll("checkbox-unchecked",
			`<img[^>]*data-emoticon-name="unchecked"[^>]*>`,
			"☐"),
		replaceAll("checkbox-checked",
			`<img[^>]*data-emoticon-name="checked"[^>]*>`,
			"☑"),
		replaceAll("breadcrumb",
			`(?s)<div id="breadcrumb-section"\s*>.*?</ol>\s*</div>`,
			""),
		metadataRule(noteDate),
		codeLanguageRule(languages),
		replaceAll("attachments-section",
			`(?s)<div class="pageSection group"\s*>\s*<div class="pageSectionHeader"\s*>\s*`+
				`<h2 id="attachments"[^>]*>Attachments:?</h2>\s*</div>.*?</div>\s*</div>`,
			""),
		replaceAll("export-footer",
			`(?s)<section class="footer-body">.*?</section>`,
			""),
		replaceAll("toc-outline-spacing",
			`<span class=['"]TOCOutline['"]\s*>([^<]*)</span>`,
			`<span class="TOCOutline">${1}&nbsp;</span>`),
	}
}

// Callout variants map to the target editor's callout classes.
var calloutClasses = map[string]string{
	"information": "info",
	"tip":         "success",
	"success":     "success",
	"note":        "warning",
	"warning":     "danger",
	"error":       "danger",
}

var (
	calloutOpen = regexp.MustCompile(
		`<div class="confluence-information-macro confluence-information-macro-` +
			`(information|note|warning|tip|error|success)[^"]*"\s*>`)

	calloutIcon     = regexp.MustCompile(`^\s*<span class="aui-icon[^"]*"\s*>\s*</span>`)
	calloutBodyWrap = regexp.MustCompile(`(?s)^\s*<div class="confluence-information-macro-body"\s*>(.*)</div>\s*$`)
	paragraphOpen   = regexp.MustCompile(`<p[^>]*>`)
)

// calloutRule rewrites information macros to callout paragraphs. Each
// pass rewrites the first intact block and re-scans from the top, so
// adjacent blocks become separate callouts and nested blocks keep their
// own wrapping.
func calloutRule() RewriteRule {
	return RewriteRule{
		Name:       "callout",
		FixedPoint: true,
		apply:      rewriteOneCallout,
	}
}

func rewriteOneCallout(content string) (string, bool) {
	for _, loc := range calloutOpen.FindAllStringSubmatchIndex(content, -1) {
		blockEnd := matchingDivEnd(content, loc[1])
		if blockEnd < 0 {
			continue // never balances, leave it for the leftover scan
		}
		variant := content[loc[2]:loc[3]]
		body := calloutBody(content[loc[1] : blockEnd-len("</div>")])
		wrapped := `<p class="callout callout-` + calloutClasses[variant] + `">` + body + `</p>`
		return content[:loc[0]] + wrapped + content[blockEnd:], true
	}
	return content, false
}

// matchingDivEnd returns the index just past the </div> closing the div
// opened before from, or -1 when the block never balances.
func matchingDivEnd(content string, from int) int {
	depth := 1
	for i := from; i < len(content); {
		nextOpen := strings.Index(content[i:], "<div")
		nextClose := strings.Index(content[i:], "</div>")
		if nextClose < 0 {
			return -1
		}
		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			i += nextOpen + len("<div")
			continue
		}
		depth--
		i += nextClose + len("</div>")
		if depth == 0 {
			return i
		}
	}
	return -1
}

// calloutBody unwraps the macro body div, drops the icon span, and
// flattens nested paragraphs to <br> line breaks so the block reads as
// one callout paragraph.
func calloutBody(inner string) string {
	inner = calloutIcon.ReplaceAllString(inner, "")
	if m := calloutBodyWrap.FindStringSubmatch(inner); m != nil {
		inner = m[1]
	}
	inner = paragraphOpen.ReplaceAllString(inner, "")
	inner = strings.ReplaceAll(inner, "</p>", "<br>")
	return strings.TrimSpace(inner)
}

var (
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// flattenText strips tags and squeezes whitespace, keeping only the
// readable text of a block.
func flattenText(s string) string {
	s = anyTag.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// metadataRule folds the page metadata block into a single conversion
// note carrying the resolved date and the original byline.
func metadataRule(noteDate string) RewriteRule {
	return replaceAllFunc("page-metadata",
		`(?s)<div class="page-metadata"\s*>(.*?)</div>`,
		func(m []string) string {
			note := "Converted from Confluence on " + noteDate + "."
			if byline := flattenText(m[1]); byline != "" {
				note += " " + strings.TrimSuffix(byline, ".") + "."
			}
			return "<p><em>" + note + "</em></p>"
		})
}

// codeLanguageRule converts syntaxhighlighter pre blocks to plain
// pre/code with a language-* class the target editor can highlight.
// The body is inserted literally, never through a template.
func codeLanguageRule(languages map[string]string) RewriteRule {
	return replaceAllFunc("code-language",
		`(?s)<pre class="syntaxhighlighter-pre"[^>]*brush: ([a-zA-Z0-9+#-]+)[^>]*>(.*?)</pre>`,
		func(m []string) string {
			return `<pre><code class="language-` + canonicalLanguage(m[1], languages) + `">` + m[2] + `</code></pre>`
		})
}
