package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okrasa/go-conf2book/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	// Create a test file
	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	// Create a test directory
	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "existing file returns true",
			path: testFile,
			want: true,
		},
		{
			name: "directory returns false",
			path: testDir,
			want: false,
		},
		{
			name: "nonexistent path returns false",
			path: filepath.Join(tempDir, "nonexistent"),
			want: false,
		},
		{
			name: "empty path returns false",
			path: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.FileExists(tt.path)
			if got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - File path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "simple name returns false",
			input: "team",
			want:  false,
		},
		{
			name:  "relative path with dot-slash returns true",
			input: "./conf2book.yaml",
			want:  true,
		},
		{
			name:  "parent path returns true",
			input: "../shared/config.yaml",
			want:  true,
		},
		{
			name:  "absolute Unix path returns true",
			input: "/etc/conf2book.yaml",
			want:  true,
		},
		{
			name:  "Windows path with backslash returns true",
			input: "C:\\exports\\space",
			want:  true,
		},
		{
			name:  "hyphenated name returns false",
			input: "my-config",
			want:  false,
		},
		{
			name:  "path with subdirectory returns true",
			input: "sub/dir",
			want:  true,
		},
		{
			name:  "empty string returns false",
			input: "",
			want:  false,
		},
		{
			name:  "name with dots but no slash returns false",
			input: "name.with.dots",
			want:  false,
		},
		{
			name:  "single forward slash returns true",
			input: "/",
			want:  true,
		},
		{
			name:  "single backslash returns true",
			input: "\\",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.IsFilePath(tt.input)
			if got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasHTMLExtension - Export page detection
// ---------------------------------------------------------------------------

func TestHasHTMLExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "html extension returns true",
			input: "page.html",
			want:  true,
		},
		{
			name:  "htm extension returns true",
			input: "page.htm",
			want:  true,
		},
		{
			name:  "uppercase extension returns true",
			input: "PAGE.HTML",
			want:  true,
		},
		{
			name:  "mixed case extension returns true",
			input: "page.Htm",
			want:  true,
		},
		{
			name:  "full path returns true",
			input: "/export/space/65537.html",
			want:  true,
		},
		{
			name:  "text file returns false",
			input: "notes.txt",
			want:  false,
		},
		{
			name:  "stylesheet returns false",
			input: "styles/site.css",
			want:  false,
		},
		{
			name:  "no extension returns false",
			input: "page",
			want:  false,
		},
		{
			name:  "html in the middle returns false",
			input: "page.html.bak",
			want:  false,
		},
		{
			name:  "empty string returns false",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.HasHTMLExtension(tt.input)
			if got != tt.want {
				t.Errorf("HasHTMLExtension(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
