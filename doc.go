// Package conf2book converts Confluence space HTML exports into markup
// that pastes cleanly into a BookStack-style rich-text editor.
//
// # Quick Start
//
// Create a converter and convert one exported document:
//
//	conv, err := conf2book.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, conf2book.Input{
//	    HTML:      exported,
//	    SourceDir: "/path/to/export",
//	    Name:      "98765.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.OutputName, []byte(result.HTML), 0644)
//
// The result carries the converted HTML, the extracted page title, the
// derived output file name, and the per-document diagnostics (missing
// attachments, surviving export markup).
//
// # Conversion Pipeline
//
// Each document passes through four stages:
//
//  1. Whitespace normalization (pre regions protected byte-for-byte)
//  2. Macro rewriting (callouts, expands, emoticons, boilerplate removal)
//  3. Attachment inlining (images embedded as base64 data URIs)
//  4. Title extraction and output naming ("CONVERTED - <Title>.html")
//
// A final scan reports every export construct the rewrite rules did not
// recognize, so nothing disappears silently.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := conf2book.NewConverter(
//	    conf2book.WithNoteDate("auto:DD/MM/YYYY"),
//	    conf2book.WithLanguageOverrides(map[string]string{"js": "javascript"}),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, conf2book.Input{
//	    HTML:         exported,
//	    SourceDir:    exportDir,    // attachment paths resolve against this
//	    Name:         entry.Name(), // fallback naming when <title> is absent
//	    EmitMarkdown: true,         // additionally render Markdown
//	})
//
// # Batch Conversion
//
// A Converter is stateless and safe for concurrent use. The conf2book
// command fans a directory tree out over a bounded worker set sharing a
// single Converter; library users batching documents can do the same.
package conf2book
