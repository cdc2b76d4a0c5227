package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// reportFlags holds batch report flags.
type reportFlags struct {
	enabled bool
	path    string
	html    bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	format   string
	noteDate string
	report   reportFlags
}

// addCommonFlags adds shared flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "Config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Only show errors and warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Show per-document timing")
}

// addReportFlags adds report flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.BoolVar(&f.enabled, "report", false, "Write a batch conversion report")
	fs.StringVar(&f.path, "report-path", "", "Report file path (implies --report)")
	fs.BoolVar(&f.html, "report-html", false, "Also render the report to HTML (implies --report)")
}

// parseConvertFlags parses convert command flags and returns the
// remaining positional arguments.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "Output directory (default: next to each source page)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "Parallel workers (0 = auto)")
	fs.StringVarP(&f.format, "format", "f", "", "Output format: html, markdown")
	fs.StringVar(&f.noteDate, "note-date", "", `Conversion note date: "auto", "auto:FORMAT", or a literal`)

	addCommonFlags(fs, &f.common)
	addReportFlags(fs, &f.report)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
