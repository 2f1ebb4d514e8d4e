package dto

import "errors"

// Upstream failure taxonomy. These describe problems with the scan itself and
// never appear inside a ReceiptExtraction; an extraction with every field
// absent is a valid outcome, not an error.
var (
	ErrUnreadableImage = errors.New("could not read or decode the uploaded file")
	ErrNoTextDetected  = errors.New("no text regions detected in the image")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ReceiptScanResponse is the final response for an uploaded receipt scan
type ReceiptScanResponse struct {
	Filename    string            `json:"filename"`
	Extraction  ReceiptExtraction `json:"extraction"`
	Quality     ScanQuality       `json:"quality"`
	Barcode     string            `json:"barcode,omitempty"`
	ProcessedAt string            `json:"processed_at"`
}

// ReceiptParseResponse wraps an extraction produced from caller-supplied lines
type ReceiptParseResponse struct {
	Extraction  ReceiptExtraction `json:"extraction"`
	ProcessedAt string            `json:"processed_at"`
}
