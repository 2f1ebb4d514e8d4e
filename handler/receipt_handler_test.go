package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/receiptly/receipt-extraction-service/dto"
	"github.com/receiptly/receipt-extraction-service/service"
)

// blankPDFProcessor yields a document with no usable text layer and no page
// images, so scans of it surface the no-text outcome
type blankPDFProcessor struct{}

func (blankPDFProcessor) ExtractLines(pdfData []byte) ([]string, error) {
	return nil, nil
}

func (blankPDFProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	return nil, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	receiptService := service.NewReceiptService(nil, nil, blankPDFProcessor{})
	receiptHandler := NewReceiptHandler(receiptService)

	router := gin.New()
	api := router.Group("/api/v1")
	receipts := api.Group("/receipts")
	receipts.POST("/scan", receiptHandler.ScanReceipt)
	receipts.POST("/parse", receiptHandler.ParseLines)

	return router
}

func TestParseEndpoint(t *testing.T) {
	router := newTestRouter()

	body := `{"lines": ["Joe's Diner", "Coffee $4.50", "Total $8.25"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ReceiptParseResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response.Extraction.Amount)
	assert.True(t, response.Extraction.Amount.Equal(decimal.RequireFromString("8.25")))
	assert.NotNil(t, response.Extraction.Location)
	assert.Equal(t, "Joe's Diner", *response.Extraction.Location)
	assert.Equal(t, []string{"Coffee $4.50"}, response.Extraction.LineItems)
}

func TestParseEndpointMissingLines(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/parse", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "BAD_REQUEST", response.Error)
}

func TestParseEndpointEmptyLines(t *testing.T) {
	router := newTestRouter()

	// Zero recognized regions is a valid request and a valid (all-absent)
	// outcome, not an error
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/parse", strings.NewReader(`{"lines": []}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ReceiptParseResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response.Extraction.Amount)
	assert.Nil(t, response.Extraction.Location)
	assert.Nil(t, response.Extraction.Date)
	assert.Nil(t, response.Extraction.LineItems)
	assert.Equal(t, "", response.Extraction.RawText)
}

func TestScanEndpointNoFile(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanEndpointNoTextDetected(t *testing.T) {
	router := newTestRouter()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "receipt.pdf")
	assert.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "NO_TEXT_DETECTED", response.Error)
}
