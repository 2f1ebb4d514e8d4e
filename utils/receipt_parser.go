package utils

import (
	"strings"

	"github.com/receiptly/receipt-extraction-service/dto"
)

// ParseReceipt derives the structured receipt fields from raw OCR line output.
// It is pure composition over the four extractors: each one reads the same
// line slice independently, none mutates it, and identical input always yields
// an identical extraction. Safe for concurrent use.
func ParseReceipt(lines []string) dto.ReceiptExtraction {
	return dto.ReceiptExtraction{
		Amount:    ExtractAmount(lines),
		Location:  ExtractLocation(lines),
		Date:      ExtractDate(lines),
		LineItems: ExtractLineItems(lines),
		RawText:   strings.Join(lines, " "),
	}
}
