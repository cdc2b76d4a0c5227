package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/okrasa/go-conf2book/internal/fileutil"
	"github.com/okrasa/go-conf2book/internal/pipeline"
)

// Check statuses.
const (
	statusClean    = "clean"
	statusFindings = "findings"
)

// checkResult holds the outcome of scanning a tree for leftover
// source-platform markup.
type checkResult struct {
	Status   string         `json:"status"`
	Root     string         `json:"root"`
	Scanned  int            `json:"scanned"`
	Findings []checkFinding `json:"findings,omitempty"`
}

// checkFinding is one piece of markup the conversion should have
// removed.
type checkFinding struct {
	File      string `json:"file"`
	Construct string `json:"construct"`
	Snippet   string `json:"snippet"`
}

// runCheckCmd scans converted pages for constructs the pipeline should
// have rewritten. Useful after a batch run to verify nothing slipped
// through.
func runCheckCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	var root string
	for _, arg := range args {
		switch {
		case arg == "--json":
			jsonOutput = true
		case arg == "-h" || arg == "--help":
			printCheckUsage(env.Stdout)
			return ExitSuccess
		case root == "" && !strings.HasPrefix(arg, "-"):
			root = arg
		}
	}
	if root == "" {
		printCheckUsage(env.Stderr)
		return ExitUsage
	}

	result, err := runCheck(ctx, root)
	if err != nil {
		fmt.Fprintln(env.Stderr, "Error:", err)
		return exitCodeFor(err)
	}

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(env.Stderr, "Error:", err)
			return ExitGeneral
		}
	} else {
		printCheckResult(env.Stdout, result)
	}

	if result.Status == statusFindings {
		return ExitGeneral
	}
	return ExitSuccess
}

// runCheck scans every .html file under root with the pipeline's own
// leftover detector.
func runCheck(ctx context.Context, root string) (*checkResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	var files []string
	if info.IsDir() {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !fileutil.HasHTMLExtension(path) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	} else {
		files = []string{root}
	}

	scanner := pipeline.NewSelectorScanner()
	result := &checkResult{Status: statusClean, Root: root}

	for _, path := range files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		content, err := os.ReadFile(path) // #nosec G304 -- path comes from directory discovery
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
		}
		result.Scanned++
		for _, l := range scanner.Scan(ctx, string(content)) {
			result.Findings = append(result.Findings, checkFinding{
				File:      path,
				Construct: l.Construct,
				Snippet:   l.Snippet,
			})
		}
	}

	if len(result.Findings) > 0 {
		result.Status = statusFindings
	}
	return result, nil
}

// printCheckResult prints a human-readable scan summary.
func printCheckResult(w io.Writer, r *checkResult) {
	fmt.Fprintln(w, "conf2book check")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scanned %d file(s) under %s\n", r.Scanned, r.Root)
	fmt.Fprintln(w)

	if len(r.Findings) == 0 {
		fmt.Fprintln(w, "  [OK] No source-platform markup found")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Status: Clean")
		return
	}

	for _, f := range r.Findings {
		fmt.Fprintf(w, "  [WARN] %s: %s\n", f.File, f.Construct)
		fmt.Fprintf(w, "         %s\n", f.Snippet)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status: %d construct(s) still present\n", len(r.Findings))
}
