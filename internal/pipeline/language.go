package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// canonicalLanguage resolves a syntaxhighlighter brush to a code class
// language name. Per-converter overrides win, then chroma's lexer
// registry, then the lowercased brush verbatim. Unknown brushes still
// produce a class so the editor can fall back to plain rendering.
func canonicalLanguage(brush string, overrides map[string]string) string {
	if lang, ok := overrides[strings.ToLower(brush)]; ok {
		return lang
	}
	if lexer := lexers.Get(brush); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.ToLower(brush)
}
