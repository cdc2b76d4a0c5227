package main

import (
	"fmt"
	"io"
)

// printUsage prints top-level usage information.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "conf2book converts Confluence space exports into editor-ready HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  conf2book [command] [flags] [path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert an export folder or single page (default)")
	fmt.Fprintln(w, "  check      Scan pages for leftover export markup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Running conf2book with just a path (or nothing) runs convert.")
	fmt.Fprintln(w, "Use \"conf2book help <command>\" for command details.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: conf2book convert [flags] [path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converts every exported .html page under path. With no path, the")
	fmt.Fprintln(w, "config default is used, then an interactive prompt.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output flags:")
	fmt.Fprintln(w, "  -o, --output DIR      Output directory (default: next to each source page)")
	fmt.Fprintln(w, "  -f, --format FORMAT   Output format: html, markdown (default: html)")
	fmt.Fprintln(w, "      --note-date DATE  Conversion note date: \"auto\", \"auto:FORMAT\", or a literal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report flags:")
	fmt.Fprintln(w, "      --report           Write a batch conversion report")
	fmt.Fprintln(w, "      --report-path PATH Report file path (implies --report)")
	fmt.Fprintln(w, "      --report-html      Also render the report to HTML (implies --report)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General flags:")
	fmt.Fprintln(w, "  -c, --config NAME     Config file name or path")
	fmt.Fprintln(w, "  -w, --workers N       Parallel workers, 0 = auto (max 8)")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose         Show per-document timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  conf2book ./space-export")
	fmt.Fprintln(w, "  conf2book convert -o ./converted --report ./space-export")
	fmt.Fprintln(w, "  conf2book convert -f markdown page.html")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: conf2book check [--json] <path>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scans .html files under path for source-platform markup the")
	fmt.Fprintln(w, "conversion should have removed. Exits non-zero when any is found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json   Machine-readable output")
}

// runHelp shows help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: conf2book version")
	case "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
	}
}
