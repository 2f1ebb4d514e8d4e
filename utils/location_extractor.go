package utils

import (
	"strings"
	"unicode/utf8"
)

// Merchant names sit at the top of a receipt, so only the first few recognized
// lines are worth looking at.
const locationScanWindow = 3

// ExtractLocation picks a merchant name from the leading lines. A line
// qualifies when its trimmed form is longer than 3 characters, carries no
// dollar sign and does not mention "receipt"; the first qualifier wins.
// Returns nil when none of the leading lines qualify.
func ExtractLocation(lines []string) *string {
	for i, line := range lines {
		if i >= locationScanWindow {
			break
		}

		trimmed := strings.TrimSpace(line)
		// Character count, not bytes: accented merchant names must not slip
		// past the length check just because they encode wider
		if utf8.RuneCountInString(trimmed) <= 3 {
			continue
		}
		if strings.Contains(trimmed, "$") {
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), "receipt") {
			continue
		}

		return &trimmed
	}

	return nil
}
