// Package report builds the optional batch conversion report: a
// Markdown summary of outcomes, renderable to HTML so the report itself
// can be pasted into the target wiki.
package report

import (
	"fmt"
	"strings"
	"time"
)

// Asset is one unreadable attachment.
type Asset struct {
	Path   string
	Reason string
}

// Residue is one surviving export construct.
type Residue struct {
	Construct string
	Snippet   string
}

// Entry is one document's outcome.
type Entry struct {
	Source       string
	Output       string
	Title        string
	TitleMissing bool
	Missing      []Asset
	Residues     []Residue
	Err          string // failure text, empty when the document converted
	Duration     time.Duration
}

// Meta describes the batch as a whole.
type Meta struct {
	Root      string
	Started   time.Time
	Duration  time.Duration
	Succeeded int
	Failed    int
}

// Markdown renders the batch outcome as a Markdown report. Sections
// with nothing to say are omitted.
func Markdown(meta Meta, entries []Entry) string {
	var b strings.Builder

	b.WriteString("# Conversion report\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n", meta.Root)
	fmt.Fprintf(&b, "- Started: %s\n", meta.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Duration: %s\n", meta.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "- Converted: %d\n", meta.Succeeded)
	fmt.Fprintf(&b, "- Failed: %d\n", meta.Failed)

	writeFailures(&b, entries)
	writeFallbackNames(&b, entries)
	writeMissingAssets(&b, entries)
	writeResidues(&b, entries)

	return b.String()
}

func writeFailures(b *strings.Builder, entries []Entry) {
	var failed []Entry
	for _, e := range entries {
		if e.Err != "" {
			failed = append(failed, e)
		}
	}
	if len(failed) == 0 {
		return
	}

	b.WriteString("\n## Failures\n\n")
	for _, e := range failed {
		fmt.Fprintf(b, "- `%s`: %s\n", e.Source, e.Err)
	}
}

func writeFallbackNames(b *strings.Builder, entries []Entry) {
	var fallbacks []Entry
	for _, e := range entries {
		if e.Err == "" && e.TitleMissing {
			fallbacks = append(fallbacks, e)
		}
	}
	if len(fallbacks) == 0 {
		return
	}

	b.WriteString("\n## Fallback names\n\n")
	b.WriteString("These exports carried no usable page title; the output name was derived from the source file name.\n\n")
	for _, e := range fallbacks {
		fmt.Fprintf(b, "- `%s` → `%s`\n", e.Source, e.Output)
	}
}

func writeMissingAssets(b *strings.Builder, entries []Entry) {
	found := false
	for _, e := range entries {
		if len(e.Missing) > 0 {
			found = true
			break
		}
	}
	if !found {
		return
	}

	b.WriteString("\n## Missing attachments\n\n")
	for _, e := range entries {
		for _, a := range e.Missing {
			fmt.Fprintf(b, "- `%s`: `%s` (%s)\n", e.Source, a.Path, a.Reason)
		}
	}
}

func writeResidues(b *strings.Builder, entries []Entry) {
	found := false
	for _, e := range entries {
		if len(e.Residues) > 0 {
			found = true
			break
		}
	}
	if !found {
		return
	}

	b.WriteString("\n## Leftover markup\n\n")
	b.WriteString("These constructs were not recognized by any rewrite rule and shipped unchanged.\n")
	for _, e := range entries {
		if len(e.Residues) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n### `%s`\n\n", e.Source)
		for _, r := range e.Residues {
			fmt.Fprintf(b, "- %s:\n\n```html\n%s\n```\n", r.Construct, r.Snippet)
		}
	}
}
