// Package pipeline implements the export-to-editor conversion pipeline.
//
// This package handles the per-document transformation stages:
//   - Whitespace normalization with byte-for-byte pre region protection
//   - Macro rewriting via an immutable ordered rule list (callouts,
//     expand blocks, emoticons, boilerplate removal, code languages)
//   - Attachment inlining as base64 data URIs
//   - Title extraction and converted-file naming
//   - Leftover scanning for export markup the rules did not recognize
//
// Directory discovery, worker fan-out, and file writing are handled
// separately by the conf2book command. This separation keeps the
// pipeline focused on document content, while the command handles
// batching, collision-free output naming, and reporting concerns.
//
// The rewrite rules deliberately match the markup one known exporter
// produces rather than parsing arbitrary HTML. A construct a rule does
// not recognize is left in place and surfaced by the leftover scan, so
// imperfect input degrades visibly instead of silently.
package pipeline
