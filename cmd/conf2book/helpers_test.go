package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okrasa/go-conf2book/internal/config"
)

// testNow pins the clock so conversion notes and report timestamps are
// deterministic.
var testNow = func() time.Time {
	return time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
}

// newTestEnv returns an Environment wired to buffers instead of the
// process streams.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    testNow,
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
	}
	return env, stdout, stderr
}

// samplePage is a minimal exported page with a usable title.
const samplePage = `<html><head><title>Demo Space : Getting Started</title></head><body><p>Welcome to the space.</p></body></html>`

// mustWriteFile writes content to path, creating parent directories.
func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
