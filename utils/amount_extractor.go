package utils

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"
)

// amountPattern matches an optional $, one or more digits, a decimal point and
// exactly two decimal digits (e.g. $12.34 or 12.34). The trailing \b keeps
// three-or-more decimal places from matching.
var amountPattern = regexp.MustCompile(`\$?\d+\.\d{2}\b`)

// wholeWordTotal matches "total" as its own word, so "subtotal" never fires it
var wholeWordTotal = regexp.MustCompile(`(?i)\btotal\b`)

// ignoreKeywords disqualify a line entirely: a line carrying any of these
// substrings contributes no candidates, regardless of any total-like keyword
// it might also contain. "Sub Total $45.00" never competes with "Total $45.00".
var ignoreKeywords = []string{
	"subtotal",
	"sub-total",
	"sub total",
	"tax",
	"tip",
	"discount",
	"change",
	"cash",
	"card",
	"credit",
	"debit",
	"tendered",
	"payment",
	"paid with",
	"amount tendered",
}

// ignoreMatcher scans a lowercased line for every ignore keyword at once
var ignoreMatcher = ahocorasick.NewStringMatcher(ignoreKeywords)

// amountRule classifies a line by keyword and assigns a priority to every
// amount found on it. Rules are evaluated top to bottom per line; the first
// one whose keywords match wins.
type amountRule struct {
	keywords []string       // case-insensitive substrings; any one is a match
	pattern  *regexp.Regexp // whole-word alternative; takes the place of keywords when set
	priority int
	addIndex bool // add the line index to the priority (later lines win ties)
}

// amountRules is ordered by decreasing specificity. The bare "total" rule adds
// the line index to its base priority, so among several bare "Total" lines the
// last one wins. That ordering dependence is deliberate and load-bearing:
// receipts routinely repeat "Total" and the final occurrence is the charge.
var amountRules = []amountRule{
	{keywords: []string{"total amount", "amount total"}, priority: 150},
	{keywords: []string{"grand total", "final total"}, priority: 120},
	{pattern: wholeWordTotal, priority: 100, addIndex: true},
	{keywords: []string{"amount due", "balance due", "you paid", "charge total", "total due"}, priority: 80},
}

type amountCandidate struct {
	value    decimal.Decimal
	priority int
}

// ExtractAmount selects the most likely transaction total from the recognized
// lines. Returns nil when no confident answer exists; it never fails.
func ExtractAmount(lines []string) *decimal.Decimal {
	var candidates []amountCandidate

	for i, line := range lines {
		lower := strings.ToLower(line)

		// Ignore set takes precedence over everything else on the line.
		// MatchThreadSafe keeps the shared matcher safe under concurrent
		// extraction calls.
		if len(ignoreMatcher.MatchThreadSafe([]byte(lower))) > 0 {
			continue
		}

		priority := classifyLine(lower, i)

		for _, match := range amountPattern.FindAllString(line, -1) {
			value, err := decimal.NewFromString(strings.TrimPrefix(match, "$"))
			if err != nil {
				continue
			}
			// A total of zero is never a plausible charge
			if !value.IsPositive() {
				continue
			}
			candidates = append(candidates, amountCandidate{value: value, priority: priority})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	// Highest priority wins; ties go to the larger amount. When nothing was
	// keyword-classified (best priority 0) this degenerates to the single
	// largest amount on the receipt, the last-resort fallback.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.priority > best.priority ||
			(c.priority == best.priority && c.value.GreaterThan(best.value)) {
			best = c
		}
	}

	return &best.value
}

// classifyLine returns the priority for every amount on the given line,
// 0 when no keyword rule matches
func classifyLine(lower string, index int) int {
	for _, rule := range amountRules {
		if rule.matches(lower) {
			if rule.addIndex {
				return rule.priority + index
			}
			return rule.priority
		}
	}
	return 0
}

func (r amountRule) matches(lower string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(lower)
	}
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
