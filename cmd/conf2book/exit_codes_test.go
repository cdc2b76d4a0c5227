package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	conf2book "github.com/okrasa/go-conf2book"
	"github.com/okrasa/go-conf2book/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Documented Exit Code Values
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	if ExitIO != 3 {
		t.Errorf("ExitIO = %d, want 3", ExitIO)
	}
	if ExitPartial != 4 {
		t.Errorf("ExitPartial = %d, want 4", ExitPartial)
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to Exit Code Mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"partial failure", ErrPartialFailure, ExitPartial},
		{"wrapped partial failure", fmt.Errorf("%w: 2 of 5", ErrPartialFailure), ExitPartial},
		{"file not found", fmt.Errorf("input path: %w", os.ErrNotExist), ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no documents", fmt.Errorf("%w in ./export", ErrNoDocuments), ExitIO},
		{"read failure", fmt.Errorf("%w: open failed", ErrReadDocument), ExitIO},
		{"write failure", fmt.Errorf("%w: disk full", ErrWriteOutput), ExitIO},
		{"report write failure", ErrWriteReport, ExitIO},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse failure", config.ErrConfigParse, ExitUsage},
		{"config field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid format", config.ErrInvalidFormat, ExitUsage},
		{"empty document", conf2book.ErrEmptyDocument, ExitUsage},
		{"invalid note date", fmt.Errorf("%w: bad", conf2book.ErrInvalidNoteDate), ExitUsage},
		{"invalid worker count", fmt.Errorf("%w: -1", ErrInvalidWorkerCount), ExitUsage},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"canceled context", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
