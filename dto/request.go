package dto

import "errors"

// ReceiptParseRequest carries recognized text lines directly, bypassing OCR.
// Lines arrive in the recognition engine's top-to-bottom scan order, one per
// detected text region.
// An empty lines slice is a valid request: recognition can legitimately find
// zero regions, and the parser maps that to an all-absent extraction.
type ReceiptParseRequest struct {
	Lines []string `json:"lines"`
}

// Validate performs basic validation on the request
func (r *ReceiptParseRequest) Validate() error {
	if r.Lines == nil {
		return errors.New("lines field is required")
	}
	return nil
}
