// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the user config path when the search included one
	for _, p := range searchedPaths {
		if strings.Contains(p, "conf2book") && strings.Contains(p, "config") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoDocuments returns a hint when a tree holds nothing convertible.
func ForNoDocuments() string {
	return format("point at a space export folder containing .html pages; already-converted files are skipped")
}

// ForMissingAttachments returns a hint for missing-attachment warnings.
func ForMissingAttachments() string {
	return format("attachment paths resolve relative to each page; convert from the export root so attachments/ and images/ are reachable")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
