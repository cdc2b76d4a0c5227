package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	conf2book "github.com/okrasa/go-conf2book"
	"github.com/okrasa/go-conf2book/internal/config"
	"github.com/okrasa/go-conf2book/internal/fileutil"
	"github.com/okrasa/go-conf2book/internal/hints"
	"github.com/okrasa/go-conf2book/internal/report"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoDocuments        = errors.New("no exported pages found")
	ErrReadDocument       = errors.New("failed to read document")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrWriteReport        = errors.New("failed to write report")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrPartialFailure     = errors.New("some documents failed to convert")
)

// File system permissions.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// DocumentConverter is the interface for the conversion library.
type DocumentConverter interface {
	Convert(ctx context.Context, input conf2book.Input) (*conf2book.Result, error)
}

// Compile-time check.
var _ DocumentConverter = (*conf2book.Converter)(nil)

// DocumentToConvert represents a single exported page to process.
type DocumentToConvert struct {
	InputPath string
	OutputDir string
}

// ConversionResult represents the outcome of converting one page.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Result     *conf2book.Result
	Err        error
	Duration   time.Duration
}

// runConvert executes the convert command.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment) error {
	started := env.Now()

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := env.Config
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []conf2book.Option{conf2book.WithNow(env.Now)}
	if cfg.Convert.NoteDate != "" {
		opts = append(opts, conf2book.WithNoteDate(cfg.Convert.NoteDate))
	}
	if len(cfg.Convert.Languages) > 0 {
		opts = append(opts, conf2book.WithLanguageOverrides(cfg.Convert.Languages))
	}
	conv, err := conf2book.NewConverter(opts...)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(args, cfg, flags.common.quiet, env)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	docs, root, err := discoverDocuments(inputPath, outputDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, inputPath)
	}

	workers := resolveWorkers(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d document(s) with %d worker(s)\n", len(docs), workers)
	}

	emitMarkdown := strings.EqualFold(cfg.Convert.Format, config.FormatMarkdown)
	results := convertBatch(ctx, conv, docs, emitMarkdown, workers)
	writeOutputs(docs, results, emitMarkdown)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if cfg.Report.Enabled {
		reportRoot := outputDir
		if reportRoot == "" {
			reportRoot = root
		}
		if err := writeReport(cfg, reportRoot, started, env, results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPartialFailure, failed, len(results))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values win.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Convert.Format = flags.format
	}
	if flags.noteDate != "" {
		cfg.Convert.NoteDate = flags.noteDate
	}
	if flags.report.enabled {
		cfg.Report.Enabled = true
	}
	if flags.report.path != "" {
		cfg.Report.Path = flags.report.path
		cfg.Report.Enabled = true
	}
	if flags.report.html {
		cfg.Report.HTML = true
		cfg.Report.Enabled = true
	}
}

// resolveInputPath determines the export location.
// Priority: positional argument > config default > interactive prompt.
func resolveInputPath(args []string, cfg *config.Config, quiet bool, env *Environment) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	if !quiet && env.Stdin != nil {
		fmt.Fprint(env.Stdout, "Export folder: ")
		scanner := bufio.NewScanner(env.Stdin)
		if scanner.Scan() {
			if path := strings.TrimSpace(scanner.Text()); path != "" {
				return path, nil
			}
		}
	}
	return "", ErrNoInput
}

// resolveOutputDir determines where converted pages go. Empty means
// next to each source page.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// discoverDocuments finds exported pages under inputPath. It returns
// the pages together with the root directory of the batch.
func discoverDocuments(inputPath, outputDir string) ([]DocumentToConvert, string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("input path: %w", err)
	}

	if !info.IsDir() {
		if !fileutil.HasHTMLExtension(inputPath) {
			return nil, "", fmt.Errorf("%w: %s is not an .html page", ErrNoDocuments, inputPath)
		}
		outDir := outputDir
		if outDir == "" {
			outDir = filepath.Dir(inputPath)
		}
		docs := []DocumentToConvert{{InputPath: inputPath, OutputDir: outDir}}
		return docs, filepath.Dir(inputPath), nil
	}

	var docs []DocumentToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.HasHTMLExtension(path) {
			return nil
		}
		// Pages produced by a previous run are not input
		if strings.HasPrefix(d.Name(), conf2book.OutputPrefix) {
			return nil
		}
		outDir := outputDir
		if outDir == "" {
			outDir = filepath.Dir(path)
		} else if rel, relErr := filepath.Rel(inputPath, filepath.Dir(path)); relErr == nil {
			outDir = filepath.Join(outputDir, rel)
		}
		docs = append(docs, DocumentToConvert{InputPath: path, OutputDir: outDir})
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("scanning %s: %w", inputPath, err)
	}
	return docs, inputPath, nil
}

// writeOutputs allocates collision-free names and writes converted
// documents. It runs sequentially after the batch so that numbering
// follows discovery order.
func writeOutputs(docs []DocumentToConvert, results []ConversionResult, emitMarkdown bool) {
	allocated := make(map[string]bool)

	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Result == nil {
			continue
		}

		if err := os.MkdirAll(docs[i].OutputDir, dirPermissions); err != nil {
			r.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			continue
		}

		outPath := allocateOutputPath(docs[i].OutputDir, r.Result.OutputName, allocated)

		content := r.Result.HTML
		if emitMarkdown {
			content = r.Result.Markdown
		}
		// #nosec G306 -- converted pages are meant to be world-readable
		if err := os.WriteFile(outPath, []byte(content), filePermissions); err != nil {
			r.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			continue
		}
		r.OutputPath = outPath
	}
}

// allocateOutputPath reserves a unique path within the batch. The
// first taker keeps the plain name, later ones get " (2)", " (3)" and
// so on before the extension. Files left over from previous runs are
// overwritten, not renamed around.
func allocateOutputPath(dir, name string, allocated map[string]bool) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	path := filepath.Join(dir, name)
	for n := 2; allocated[path]; n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, n, ext))
	}
	allocated[path] = true
	return path
}

// printResults prints conversion outcomes and returns the failure
// count. Failures and warnings go to stderr, progress to stdout.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed, missing int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		succeeded++
		missing += printWarnings(r, env)

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if missing > 0 {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForMissingAttachments(), "\n"))
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed
}

// printWarnings reports recoverable problems for one converted page
// and returns how many attachments were missing.
func printWarnings(r ConversionResult, env *Environment) int {
	if r.Result == nil {
		return 0
	}
	if r.Result.TitleMissing {
		fmt.Fprintf(env.Stderr, "WARN %s: no usable title, falling back to %s\n",
			r.InputPath, filepath.Base(r.OutputPath))
	}
	for _, a := range r.Result.MissingAssets {
		fmt.Fprintf(env.Stderr, "WARN %s: missing attachment %s (%s)\n", r.InputPath, a.Path, a.Reason)
	}
	if n := len(r.Result.Leftovers); n > 0 {
		fmt.Fprintf(env.Stderr, "WARN %s: %d construct(s) could not be converted\n", r.InputPath, n)
	}
	return len(r.Result.MissingAssets)
}

// writeReport writes the batch report next to the converted pages, or
// wherever report.path points.
func writeReport(cfg *config.Config, root string, started time.Time, env *Environment, results []ConversionResult) error {
	meta := report.Meta{
		Root:     root,
		Started:  started,
		Duration: env.Now().Sub(started),
	}

	entries := make([]report.Entry, 0, len(results))
	for _, r := range results {
		e := report.Entry{
			Source:   r.InputPath,
			Output:   r.OutputPath,
			Duration: r.Duration,
		}
		if r.Err != nil {
			e.Err = r.Err.Error()
			meta.Failed++
		} else {
			meta.Succeeded++
		}
		if r.Result != nil {
			e.Title = r.Result.Title
			e.TitleMissing = r.Result.TitleMissing
			for _, a := range r.Result.MissingAssets {
				e.Missing = append(e.Missing, report.Asset{Path: a.Path, Reason: a.Reason})
			}
			for _, l := range r.Result.Leftovers {
				e.Residues = append(e.Residues, report.Residue{Construct: l.Construct, Snippet: l.Snippet})
			}
		}
		entries = append(entries, e)
	}

	md := report.Markdown(meta, entries)

	path := cfg.Report.Path
	if path == "" {
		path = filepath.Join(root, "conversion-report.md")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteReport, err)
		}
	}
	// #nosec G306 -- reports are meant to be world-readable
	if err := os.WriteFile(path, []byte(md), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteReport, err)
	}
	fmt.Fprintf(env.Stdout, "Report %s\n", path)

	if cfg.Report.HTML {
		rendered, err := report.RenderHTML(md)
		if err != nil {
			return err
		}
		htmlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
		// #nosec G306 -- reports are meant to be world-readable
		if err := os.WriteFile(htmlPath, []byte(rendered), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteReport, err)
		}
		fmt.Fprintf(env.Stdout, "Report %s\n", htmlPath)
	}
	return nil
}
