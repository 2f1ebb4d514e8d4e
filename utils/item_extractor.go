package utils

import "strings"

// ExtractLineItems collects the lines that look like purchased items: priced
// (they carry a $) but not totals or amount summaries. Lines keep their
// original order. Returns nil, not an empty slice, when nothing qualifies, so
// callers can tell "no items found" from "empty receipt".
func ExtractLineItems(lines []string) []string {
	var items []string

	for _, line := range lines {
		if !strings.Contains(line, "$") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "total") || strings.Contains(lower, "amount") {
			continue
		}
		items = append(items, line)
	}

	return items
}
