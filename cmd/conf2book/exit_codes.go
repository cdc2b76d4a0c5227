package main

import (
	"errors"
	"os"

	conf2book "github.com/okrasa/go-conf2book"
	"github.com/okrasa/go-conf2book/internal/config"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0 // conversion completed
	ExitGeneral = 1 // unexpected internal failure
	ExitUsage   = 2 // bad flags, config, or arguments
	ExitIO      = 3 // file system failure
	ExitPartial = 4 // batch finished but some documents failed
)

// exitCodeFor maps an error to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrPartialFailure) {
		return ExitPartial
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDocuments) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrWriteReport) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, conf2book.ErrEmptyDocument) ||
		errors.Is(err, conf2book.ErrInvalidNoteDate) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
