package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/receiptly/receipt-extraction-service/dto"
	"github.com/receiptly/receipt-extraction-service/service"
)

type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
	}
}

// ScanReceipt handles the POST /receipts/scan endpoint: a multipart upload of
// a receipt photo or PDF, OCR'd and extracted in one pass.
func (h *ReceiptHandler) ScanReceipt(c *gin.Context) {
	log.Println("Received receipt scan request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "BAD_REQUEST", "No file provided", err)
		return
	}

	// Optional password for encrypted PDF receipts
	password := c.PostForm("password")

	response, err := h.receiptService.ScanReceipt(fileHeader, password)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrNoTextDetected):
			h.sendError(c, http.StatusUnprocessableEntity, "NO_TEXT_DETECTED", "No text detected in the uploaded receipt", err)
		case errors.Is(err, dto.ErrUnreadableImage):
			h.sendError(c, http.StatusBadRequest, "UNREADABLE_IMAGE", "Could not read the uploaded receipt", err)
		default:
			h.sendError(c, http.StatusInternalServerError, "SCAN_FAILED", "Failed to scan receipt", err)
		}
		return
	}

	log.Printf("Receipt scan completed for %s", fileHeader.Filename)
	c.JSON(http.StatusOK, response)
}

// ParseLines handles the POST /receipts/parse endpoint: recognized text lines
// supplied directly by the caller, no OCR involved.
func (h *ReceiptHandler) ParseLines(c *gin.Context) {
	var request dto.ReceiptParseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), err)
		return
	}

	extraction := h.receiptService.ParseLines(request.Lines)

	c.JSON(http.StatusOK, dto.ReceiptParseResponse{
		Extraction:  extraction,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *ReceiptHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}
