package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptExtraction holds the structured fields derived from the raw OCR
// output of a single receipt. Every field except RawText is optional: a nil
// pointer (or nil slice) means the extractors found no confident answer, which
// is a valid outcome, not an error.
type ReceiptExtraction struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`     // transaction total, > 0 when present
	Location  *string          `json:"location,omitempty"`   // merchant name, trimmed, non-empty when present
	Date      *time.Time       `json:"date,omitempty"`       // transaction date, within the last two years
	LineItems []string         `json:"line_items,omitempty"` // candidate item lines in original order; nil when none found
	RawText   string           `json:"raw_text"`             // all input lines joined with single spaces
}

// ScanQuality reports how trustworthy the OCR pass behind an extraction was.
type ScanQuality struct {
	Engine        string   `json:"engine"`
	OcrConfidence float64  `json:"ocr_confidence"`
	Issues        []string `json:"issues,omitempty"`
}
