package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clock gives the sanity-window tests a fixed "now"
var clock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestExtractDateFromToken(t *testing.T) {
	lines := []string{
		"Joe's Diner",
		"Visit of 02/14/2026 at 9:41",
	}

	date := extractDateAt(lines, clock)

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), *date)
}

func TestExtractDateStripsTokenPunctuation(t *testing.T) {
	date := extractDateAt([]string{"Date: (01/05/2026)."}, clock)

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), *date)
}

func TestExtractDateWholeLinePass(t *testing.T) {
	// "Jan 05, 2026" only parses as a whole line; its tokens are useless
	date := extractDateAt([]string{"Jan 05, 2026"}, clock)

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), *date)
}

func TestExtractDateDayMonthFallback(t *testing.T) {
	// 13 is no month, so the dd/MM/yyyy layout has to pick this one up
	date := extractDateAt([]string{"13/02/2026"}, clock)

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), *date)
}

func TestExtractDateTwoDigitYear(t *testing.T) {
	date := extractDateAt([]string{"12/05/24"}, clock)

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC), *date)
}

func TestExtractDateSanityWindow(t *testing.T) {
	tooOld := clock.AddDate(-3, 0, 0).Format("01/02/2006")
	tomorrow := clock.AddDate(0, 0, 1).Format("01/02/2006")

	// Out-of-window parses are non-matches, not dead ends: evaluation moves
	// on to the next candidate.
	lines := []string{
		"Printed " + tooOld,
		"Valid until " + tomorrow,
		"Sold on 02/20/2026",
	}

	date := extractDateAt(lines, clock)

	assert.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), *date)

	assert.Nil(t, extractDateAt([]string{tooOld}, clock))
	assert.Nil(t, extractDateAt([]string{tomorrow}, clock))
}

func TestExtractDateOnlyScansLeadingLines(t *testing.T) {
	lines := make([]string, 10)
	lines = append(lines, "02/20/2026")

	assert.Nil(t, extractDateAt(lines, clock))
	assert.Nil(t, extractDateAt(nil, clock))
}
