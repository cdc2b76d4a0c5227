package pipeline

// Notes:
// - Title parsing is deliberately tolerant: exports are full pages but
//   also fragments, so fixtures cover both.
// - OutputName cases pin the fallback chain: title, then source file
//   name, then the fixed last resort.

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestTitle - Page title extraction
// ---------------------------------------------------------------------------

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantFound bool
	}{
		{
			name:      "space prefix stripped",
			content:   `<html><head><title>Demo Space : Getting Started</title></head><body></body></html>`,
			wantTitle: "Getting Started",
			wantFound: true,
		},
		{
			name:      "colon without spaces still cuts",
			content:   `<html><head><title>My Page: Getting Started!!</title></head></html>`,
			wantTitle: "Getting Started!!",
			wantFound: true,
		},
		{
			name:      "no colon used whole",
			content:   `<html><head><title>Release Notes</title></head></html>`,
			wantTitle: "Release Notes",
			wantFound: true,
		},
		{
			name:      "multiple colons cut at the first",
			content:   `<html><head><title>Space : Topic : Detail</title></head></html>`,
			wantTitle: "Topic : Detail",
			wantFound: true,
		},
		{
			name:      "title element missing",
			content:   `<html><head></head><body><h1>Heading</h1></body></html>`,
			wantTitle: "",
			wantFound: false,
		},
		{
			name:      "empty title element",
			content:   `<html><head><title></title></head></html>`,
			wantTitle: "",
			wantFound: false,
		},
		{
			name:      "whitespace only title",
			content:   `<html><head><title>   </title></head></html>`,
			wantTitle: "",
			wantFound: false,
		},
		{
			name:      "empty document",
			content:   "",
			wantTitle: "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			namer := NewExportTitleNamer()
			got, found := namer.Title(tt.content)
			if got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			if found != tt.wantFound {
				t.Errorf("Title() found = %v, want %v", found, tt.wantFound)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestOutputName - Converted file naming and fallbacks
// ---------------------------------------------------------------------------

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		title      string
		sourceName string
		want       string
	}{
		{
			name:       "title words hyphenated",
			title:      "Getting Started",
			sourceName: "12345.html",
			want:       "CONVERTED - Getting-Started.html",
		},
		{
			name:       "punctuation stripped",
			title:      "Getting Started!!",
			sourceName: "page.html",
			want:       "CONVERTED - Getting-Started.html",
		},
		{
			name:       "plus signs stripped without doubling hyphens",
			title:      "C++ How-To",
			sourceName: "page.html",
			want:       "CONVERTED - C-How-To.html",
		},
		{
			name:       "missing title falls back to source name",
			title:      "",
			sourceName: "42.html",
			want:       "CONVERTED - 42.html",
		},
		{
			name:       "unsanitizable source name falls back to fixed name",
			title:      "",
			sourceName: "???.html",
			want:       "CONVERTED - untitled.html",
		},
		{
			name:       "title of only punctuation falls back to source name",
			title:      "!!!",
			sourceName: "notes.html",
			want:       "CONVERTED - notes.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			namer := NewExportTitleNamer()
			got := namer.OutputName(tt.title, tt.sourceName)
			if got != tt.want {
				t.Errorf("OutputName(%q, %q) = %q, want %q", tt.title, tt.sourceName, got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain words", "Getting Started", "Getting-Started"},
		{"interior punctuation removed", "What's New?", "Whats-New"},
		{"hyphen runs squeezed", "a -- b", "a-b"},
		{"edge hyphens trimmed", "-draft-", "draft"},
		{"unicode word characters", "café menu", "caf-menu"},
		{"nothing usable", "???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeName(tt.input); got != tt.want {
				t.Errorf("sanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
