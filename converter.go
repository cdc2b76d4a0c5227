package conf2book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okrasa/go-conf2book/internal/markdown"
	"github.com/okrasa/go-conf2book/internal/notedate"
	"github.com/okrasa/go-conf2book/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.Normalizer      = (*pipeline.WhitespaceNormalizer)(nil)
	_ pipeline.MacroRewriter   = (*pipeline.ExportRewriter)(nil)
	_ pipeline.AssetInliner    = (*pipeline.Base64Inliner)(nil)
	_ pipeline.TitleNamer      = (*pipeline.ExportTitleNamer)(nil)
	_ pipeline.LeftoverScanner = (*pipeline.SelectorScanner)(nil)
	_ markdownConverter        = (*markdown.Converter)(nil)
)

// markdownConverter defines the contract for the optional Markdown
// output stage.
type markdownConverter interface {
	FromHTML(ctx context.Context, content string) (string, error)
}

// Converter orchestrates the export-to-editor conversion pipeline.
// Create with NewConverter and use Convert per document. A Converter
// holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg        converterConfig
	normalizer pipeline.Normalizer
	rewriter   pipeline.MacroRewriter
	inliner    pipeline.AssetInliner
	namer      pipeline.TitleNamer
	scanner    pipeline.LeftoverScanner
	markdown   markdownConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithNoteDate,
// WithLanguageOverrides). Returns an error if the note date cannot be
// resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			now:      time.Now,
			noteDate: DefaultNoteDate,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	// The note date is resolved once; every document in a batch carries
	// the same conversion date.
	noteDate, err := notedate.Resolve(c.cfg.noteDate, c.cfg.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNoteDate, err)
	}

	c.normalizer = pipeline.NewWhitespaceNormalizer()
	c.rewriter = pipeline.NewExportRewriter(noteDate, c.cfg.languages)
	c.inliner = pipeline.NewBase64Inliner()
	c.namer = pipeline.NewExportTitleNamer()
	c.scanner = pipeline.NewSelectorScanner()
	c.markdown = markdown.NewConverter()

	return c, nil
}

// Convert runs the full pipeline on one document and returns the result.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	// Normalize whitespace, keeping pre regions byte-for-byte intact
	content := c.normalizer.Normalize(ctx, input.HTML)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Rewrite export macros to editor markup
	content = c.rewriter.Rewrite(ctx, content)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Inline attachment placeholders as data URIs
	content, missing := c.inliner.Inline(ctx, content, input.SourceDir)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Extract the page title and derive the output name
	title, ok := c.namer.Title(content)
	outputName := c.namer.OutputName(title, input.Name)

	res := &Result{
		HTML:          content,
		Title:         title,
		OutputName:    outputName,
		TitleMissing:  !ok,
		MissingAssets: toMissingAssets(missing),
		Leftovers:     toLeftovers(c.scanner.Scan(ctx, content)),
	}

	if input.EmitMarkdown {
		md, err := c.markdown.FromHTML(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
		}
		res.Markdown = md
		res.OutputName = strings.TrimSuffix(outputName, ".html") + ".md"
	}

	return res, nil
}

// validateInput checks that required fields are present.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their paths validated earlier at discovery
// time. Both paths converge here before processing.
func (c *Converter) validateInput(input Input) error {
	if input.HTML == "" {
		return ErrEmptyDocument
	}
	return nil
}

// toMissingAssets converts internal pipeline diagnostics to the public type.
func toMissingAssets(assets []pipeline.MissingAsset) []MissingAsset {
	if len(assets) == 0 {
		return nil
	}
	out := make([]MissingAsset, len(assets))
	for i, a := range assets {
		out[i] = MissingAsset(a)
	}
	return out
}

// toLeftovers converts internal scan findings to the public type.
func toLeftovers(found []pipeline.Leftover) []Leftover {
	if len(found) == 0 {
		return nil
	}
	out := make([]Leftover, len(found))
	for i, l := range found {
		out[i] = Leftover(l)
	}
	return out
}
