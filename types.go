package conf2book

import (
	"strings"
	"time"

	"github.com/okrasa/go-conf2book/internal/pipeline"
)

// OutputPrefix marks files produced by this converter. Discovery skips
// files already carrying it, so re-running a conversion never consumes
// its own output.
const OutputPrefix = pipeline.OutputPrefix

// DefaultNoteDate renders the conversion-note date in ISO form.
const DefaultNoteDate = "auto"

// Input contains conversion parameters for one exported document.
type Input struct {
	HTML         string // exported page markup (required)
	SourceDir    string // directory attachment paths resolve against (optional)
	Name         string // source file name, used for fallback naming (optional)
	EmitMarkdown bool   // additionally render the converted HTML to Markdown
}

// Result holds the converted document and its diagnostics.
type Result struct {
	HTML          string
	Markdown      string // set when Input.EmitMarkdown
	Title         string
	OutputName    string
	TitleMissing  bool // no usable <title>; OutputName is a fallback
	MissingAssets []MissingAsset
	Leftovers     []Leftover
}

// MissingAsset records an attachment the document references but the
// converter could not read. The conversion still completes; the image
// tag is emitted visibly broken.
type MissingAsset struct {
	Path   string
	Reason string
}

// Leftover is an export construct that survived conversion unrecognized.
type Leftover struct {
	Construct string
	Snippet   string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	now       func() time.Time
	noteDate  string
	languages map[string]string
}

// WithNow sets the clock used to resolve the conversion-note date.
// Panics if now is nil (programmer error, similar to time.NewTicker).
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("conf2book: WithNow clock must not be nil")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithNoteDate sets the conversion-note date format: "auto" for the
// ISO date, "auto:FORMAT" with date tokens or a preset name, or any
// other value used verbatim.
func WithNoteDate(format string) Option {
	return func(c *Converter) {
		c.cfg.noteDate = format
	}
}

// WithLanguageOverrides maps syntaxhighlighter brush names to code
// language classes, consulted ahead of the built-in lexer registry.
// Brush names are matched case-insensitively.
func WithLanguageOverrides(overrides map[string]string) Option {
	return func(c *Converter) {
		c.cfg.languages = make(map[string]string, len(overrides))
		for brush, lang := range overrides {
			c.cfg.languages[strings.ToLower(brush)] = lang
		}
	}
}
