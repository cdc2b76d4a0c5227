package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/okrasa/go-conf2book/internal/config"
	"github.com/okrasa/go-conf2book/internal/hints"
)

// run dispatches the subcommand and maps its outcome to an exit code.
// A bare path (or no arguments at all) runs convert.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		return runConvertCmd(ctx, nil, env)
	}

	switch args[0] {
	case "convert":
		return runConvertCmd(ctx, args[1:], env)
	case "check":
		return runCheckCmd(ctx, args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "conf2book %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(args[1:], env)
		return ExitSuccess
	case "-h", "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	default:
		return runConvertCmd(ctx, args, env)
	}
}

// runConvertCmd parses flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "Error:", err)
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, "Error:", errorWithHint(err, flags.common.config))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// errorWithHint appends an actionable hint for known failure shapes.
func errorWithHint(err error, configName string) string {
	msg := err.Error()
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, ErrNoDocuments):
		msg += hints.ForNoDocuments()
	case errors.Is(err, ErrWriteOutput):
		msg += hints.ForOutputDirectory()
	}
	return msg
}
