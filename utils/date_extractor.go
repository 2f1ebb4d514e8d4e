package utils

import (
	"strings"
	"time"
	"unicode"
)

// dateLayouts is the fixed, ordered set of formats a receipt date may appear
// in. Zero-padded layouts come before their lenient single-digit variants so
// an unambiguous match is preferred.
var dateLayouts = []string{
	"01/02/2006",
	"01/02/06",
	"1/2/2006",
	"1/2/06",
	"01-02-2006",
	"02/01/2006",
	"2006-01-02",
	"Jan 02, 2006",
	"January 02, 2006",
}

// Dates print near the top of a receipt; scanning further down mostly finds
// expiry dates and return-policy boilerplate.
const dateScanWindow = 10

// ExtractDate selects a transaction date from the recognized lines, or nil
// when no plausible one is found.
func ExtractDate(lines []string) *time.Time {
	return extractDateAt(lines, time.Now())
}

// extractDateAt is ExtractDate with an injected clock for the sanity window.
// Two passes run over the first lines: token-level first, then whole-line for
// formats that span whitespace ("Jan 02, 2026"). A parse outside the sanity
// window is treated as a non-match and never blocks later candidates.
func extractDateAt(lines []string, now time.Time) *time.Time {
	limit := len(lines)
	if limit > dateScanWindow {
		limit = dateScanWindow
	}

	// Token pass: lines outer, formats inner, tokens innermost
	for _, line := range lines[:limit] {
		for _, layout := range dateLayouts {
			for _, token := range strings.Fields(line) {
				token = strings.TrimFunc(token, unicode.IsPunct)
				if parsed, ok := parsePlausibleDate(token, layout, now); ok {
					return parsed
				}
			}
		}
	}

	// Whole-line pass
	for _, line := range lines[:limit] {
		for _, layout := range dateLayouts {
			if parsed, ok := parsePlausibleDate(strings.TrimSpace(line), layout, now); ok {
				return parsed
			}
		}
	}

	return nil
}

// parsePlausibleDate parses candidate against layout and applies the sanity
// window: the result must be later than two years ago and no later than now.
func parsePlausibleDate(candidate, layout string, now time.Time) (*time.Time, bool) {
	parsed, err := time.Parse(layout, candidate)
	if err != nil {
		return nil, false
	}
	if !parsed.After(now.AddDate(-2, 0, 0)) || parsed.After(now) {
		return nil, false
	}
	return &parsed, true
}
