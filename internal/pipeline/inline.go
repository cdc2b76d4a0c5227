package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
)

// MissingAsset records an attachment referenced by a document that
// could not be inlined.
type MissingAsset struct {
	Path   string
	Reason string
}

// AssetInliner defines the contract for resolving image placeholders.
type AssetInliner interface {
	Inline(ctx context.Context, content, baseDir string) (string, []MissingAsset)
}

// Base64Inliner replaces image placeholders with data-URI image tags so
// the converted document carries its attachments inside itself.
type Base64Inliner struct{}

// NewBase64Inliner creates a Base64Inliner.
func NewBase64Inliner() *Base64Inliner {
	return &Base64Inliner{}
}

// imagePlaceholder matches the three-field placeholder the embedded
// image rule emits: path, height, width.
var imagePlaceholder = regexp.MustCompile(
	placeholderStart + `img\|([^|` + placeholderEnd + `]*)\|(\d*)\|(\d*)` + placeholderEnd)

// Inline resolves every image placeholder by reading the attachment
// relative to baseDir and embedding it base64-encoded. Unreadable
// attachments produce a visibly broken image tag and a MissingAsset
// diagnostic; the conversion continues.
func (b *Base64Inliner) Inline(ctx context.Context, content, baseDir string) (string, []MissingAsset) {
	if ctx.Err() != nil {
		return content, nil
	}

	var missing []MissingAsset
	out := imagePlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		m := imagePlaceholder.FindStringSubmatch(match)
		path, height, width := m[1], m[2], m[3]

		data, err := readAsset(baseDir, path)
		if err != nil {
			missing = append(missing, MissingAsset{Path: path, Reason: err.Error()})
			return brokenImageTag(path, height, width)
		}

		encoded := base64.StdEncoding.EncodeToString(data)
		return `<img src="data:image/png;base64,` + encoded + `" height="` + height + `" width="` + width + `">`
	})
	return out, missing
}

// readAsset reads an attachment relative to the document directory.
// Paths that escape the directory are rejected.
func readAsset(baseDir, path string) ([]byte, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("path escapes document directory: %s", path)
	}
	data, err := os.ReadFile(filepath.Join(baseDir, rel)) // #nosec G304 -- path comes from the export being converted
	if err != nil {
		return nil, err
	}
	return data, nil
}

// brokenImageTag keeps the image's place in the document visible when
// its attachment is gone.
func brokenImageTag(path, height, width string) string {
	return `<img src="" alt="missing attachment: ` + html.EscapeString(path) +
		`" height="` + height + `" width="` + width + `">`
}
