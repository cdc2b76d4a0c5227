// Package notedate renders the date stamped into conversion notes.
//
// A configured value is either a literal string, used verbatim, or an
// "auto" directive that formats the conversion time: "auto" alone
// gives an ISO date, "auto:PATTERN" applies date tokens or a preset
// name.
package notedate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPattern indicates a date pattern that cannot be rendered.
var ErrInvalidPattern = errors.New("invalid date pattern")

// maxPatternLen bounds pattern length so a config typo cannot balloon
// the conversion note.
const maxPatternLen = 50

// defaultPattern is used for a bare "auto" value.
const defaultPattern = "YYYY-MM-DD"

// presets names the common patterns. The confluence preset matches the
// byline style the export itself prints ("Aug 23, 2026").
var presets = map[string]string{
	"iso":        "YYYY-MM-DD",
	"european":   "DD/MM/YYYY",
	"us":         "MM/DD/YYYY",
	"long":       "MMMM D, YYYY",
	"confluence": "MMM D, YYYY",
}

type runLayout struct {
	run    int
	layout string
}

// runLayouts maps a pattern letter to its Go layout fragments, longest
// run first. Leftover letters with no matching length stay literal.
var runLayouts = map[byte][]runLayout{
	'Y': {{4, "2006"}, {2, "06"}},
	'M': {{4, "January"}, {3, "Jan"}, {2, "01"}, {1, "1"}},
	'D': {{2, "02"}, {1, "2"}},
}

// Resolve renders the configured note date for the given time.
//
// Values that do not start with "auto" pass through unchanged. "auto"
// and "auto:PATTERN" format now; a pattern takes date tokens (YYYY,
// YY, MMMM, MMM, MM, M, DD, D), bracketed literals ("[updated] YYYY"),
// or a preset name. The "auto" prefix and preset names are
// case-insensitive.
func Resolve(value string, now time.Time) (string, error) {
	rest, isAuto := cutAuto(value)
	if !isAuto {
		return value, nil
	}

	pattern := defaultPattern
	if rest != "" {
		if rest[0] != ':' {
			return "", fmt.Errorf("%w: %q is neither \"auto\" nor \"auto:PATTERN\"", ErrInvalidPattern, value)
		}
		pattern = rest[1:]
		if named, ok := presets[strings.ToLower(pattern)]; ok {
			pattern = named
		}
	}

	layout, err := layoutFor(pattern)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// cutAuto strips a case-insensitive "auto" prefix.
func cutAuto(value string) (rest string, ok bool) {
	if len(value) < 4 || !strings.EqualFold(value[:4], "auto") {
		return "", false
	}
	return value[4:], true
}

// layoutFor translates a token pattern into a Go time layout. Tokens
// are runs of Y, M, or D; bracketed spans copy through untouched; any
// other byte is a literal.
func layoutFor(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if len(pattern) > maxPatternLen {
		return "", fmt.Errorf("%w: pattern longer than %d characters", ErrInvalidPattern, maxPatternLen)
	}

	var layout strings.Builder
	layout.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '[' {
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at offset %d", ErrInvalidPattern, i)
			}
			layout.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		spans, ok := runLayouts[c]
		if !ok {
			layout.WriteByte(c)
			i++
			continue
		}

		run := 1
		for i+run < len(pattern) && pattern[i+run] == c {
			run++
		}
		for run > 0 {
			n := 0
			for _, s := range spans {
				if s.run <= run {
					layout.WriteString(s.layout)
					n = s.run
					break
				}
			}
			if n == 0 {
				layout.WriteByte(c)
				n = 1
			}
			run -= n
			i += n
		}
	}

	return layout.String(), nil
}
