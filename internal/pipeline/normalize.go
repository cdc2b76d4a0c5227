package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// Placeholders use Unicode Private Use Area delimiters. These are
// guaranteed to not conflict with any standard characters, so document
// text can never produce a well-formed placeholder by accident.
const (
	placeholderStart = "" // U+E000: Private Use Area start
	placeholderEnd   = "" // U+E001: Private Use Area end

	prePlaceholderPrefix = "pre:"
)

// Precompiled regex patterns for performance.
var (
	// Preformatted regions, protected byte-for-byte during normalization
	prePattern = regexp.MustCompile(`(?s)<pre[^>]*>.*?</pre>`)

	// Newline runs with their surrounding whitespace
	newlineRuns = regexp.MustCompile(`\s*[\r\n]+\s*`)

	// Runs of horizontal whitespace
	spaceRuns = regexp.MustCompile(`[ \t]{2,}`)

	// Whitespace between a closing and an opening tag bracket
	interTagSpace = regexp.MustCompile(`>\s+<`)

	// A well-formed pre placeholder: delimiters around 32 hex digits.
	// Token-shaped text that was never issued fails the map lookup and
	// passes through untouched.
	prePlaceholder = regexp.MustCompile(placeholderStart + prePlaceholderPrefix + `([0-9a-f]{32})` + placeholderEnd)
)

// Normalizer defines the contract for whitespace normalization.
type Normalizer interface {
	Normalize(ctx context.Context, content string) string
}

// WhitespaceNormalizer collapses insignificant whitespace so later
// rewrite rules see tags on a single line, while <pre> regions survive
// byte-for-byte.
type WhitespaceNormalizer struct{}

// NewWhitespaceNormalizer creates a WhitespaceNormalizer.
func NewWhitespaceNormalizer() *WhitespaceNormalizer {
	return &WhitespaceNormalizer{}
}

// Normalize protects preformatted regions, collapses whitespace in the
// rest of the document, and restores the regions unchanged.
func (n *WhitespaceNormalizer) Normalize(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	protected := make(map[string]string)
	content = protectPreRegions(content, protected)
	content = collapseWhitespace(content)
	return restorePreRegions(content, protected)
}

// protectPreRegions swaps each <pre> region for a tokened placeholder.
// The stored region is escaped so regexp replacement templates can never
// expand anything inside it; restorePreRegions reverses the escape.
func protectPreRegions(content string, protected map[string]string) string {
	return prePattern.ReplaceAllStringFunc(content, func(region string) string {
		token := newToken()
		protected[token] = escapeTemplateMeta(region)
		return placeholderStart + prePlaceholderPrefix + token + placeholderEnd
	})
}

// collapseWhitespace rewrites whitespace that carries no meaning in
// rendered HTML: newline runs and space runs become one space, and
// whitespace between adjacent tags disappears. A single space between
// words and one tag bracket is left alone since it renders.
func collapseWhitespace(content string) string {
	content = newlineRuns.ReplaceAllString(content, " ")
	content = spaceRuns.ReplaceAllString(content, " ")
	content = interTagSpace.ReplaceAllString(content, "><")
	return strings.TrimSpace(content)
}

// restorePreRegions replaces each well-formed placeholder with its
// original region. Only tokens actually issued for this document
// restore; anything else stays as-is.
func restorePreRegions(content string, protected map[string]string) string {
	return prePlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		token := prePlaceholder.FindStringSubmatch(match)[1]
		region, ok := protected[token]
		if !ok {
			return match
		}
		return unescapeTemplateMeta(region)
	})
}

// escapeTemplateMeta escapes $, the one character Go regexp replacement
// templates expand. Paired with unescapeTemplateMeta.
func escapeTemplateMeta(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// unescapeTemplateMeta reverses escapeTemplateMeta.
func unescapeTemplateMeta(s string) string {
	return strings.ReplaceAll(s, "$$", "$")
}

// tokenFallback distinguishes fallback tokens issued within the same
// clock reading.
var tokenFallback atomic.Uint64

// newToken returns 32 hex digits from crypto/rand, falling back to a
// time-and-counter value if the system source fails.
func newToken() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("%016x%016x", uint64(time.Now().UnixNano()), tokenFallback.Add(1)) // #nosec G115 -- wraparound is fine for uniqueness
	}
	return hex.EncodeToString(buf[:])
}
