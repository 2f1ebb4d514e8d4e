package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/receiptly/receipt-extraction-service/client"
	"github.com/receiptly/receipt-extraction-service/dto"
	"github.com/receiptly/receipt-extraction-service/utils"
)

// A PDF text layer shorter than this is treated as a scanned document and
// pushed through OCR instead.
const minPDFTextChars = 20

type ReceiptService struct {
	tesseractClient *client.TesseractClient
	paddleClient    *client.PaddleClient
	pdfProcessor    PDFProcessor
}

func NewReceiptService(
	tesseractClient *client.TesseractClient,
	paddleClient *client.PaddleClient,
	pdfProcessor PDFProcessor,
) *ReceiptService {
	return &ReceiptService{
		tesseractClient: tesseractClient,
		paddleClient:    paddleClient,
		pdfProcessor:    pdfProcessor,
	}
}

// ScanReceipt OCRs an uploaded receipt (photo or PDF) and extracts its
// structured fields. Failures here describe the scan, never the extraction:
// an extraction with every field absent is returned as a success.
func (s *ReceiptService) ScanReceipt(fileHeader *multipart.FileHeader, password string) (*dto.ReceiptScanResponse, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrUnreadableImage, err)
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrUnreadableImage, err)
	}

	var lines []string
	var quality dto.ScanQuality
	var barcode string

	isPDF := strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf")

	if isPDF {
		lines, quality, err = s.recognizePDF(fileBytes, password)
	} else {
		lines, quality, err = s.recognizeImage(fileHeader, fileBytes)
		if err == nil {
			barcode = s.decodeBarcode(fileBytes)
		}
	}
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, dto.ErrNoTextDetected
	}

	log.Printf("Recognized %d text regions in %s (engine=%s, confidence=%.1f)",
		len(lines), fileHeader.Filename, quality.Engine, quality.OcrConfidence)

	extraction := utils.ParseReceipt(lines)

	return &dto.ReceiptScanResponse{
		Filename:    fileHeader.Filename,
		Extraction:  extraction,
		Quality:     quality,
		Barcode:     barcode,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// ParseLines runs the extraction core over lines the caller already has, e.g.
// from an on-device recognition engine. Pure, in-process, no OCR involved.
func (s *ReceiptService) ParseLines(lines []string) dto.ReceiptExtraction {
	return utils.ParseReceipt(lines)
}

// recognizeImage picks a recognition engine for a receipt photo. PaddleOCR
// runs first when configured, Tesseract is the fallback.
func (s *ReceiptService) recognizeImage(fileHeader *multipart.FileHeader, fileBytes []byte) ([]string, dto.ScanQuality, error) {
	if s.paddleClient != nil {
		lines, conf, err := s.paddleClient.ExtractLines(fileBytes)
		if err == nil {
			return lines, dto.ScanQuality{Engine: "paddleocr", OcrConfidence: conf}, nil
		}
		log.Printf("PaddleOCR failed, falling back to Tesseract: %v", err)
	}

	lines, conf, err := s.tesseractClient.ExtractLinesFromFile(fileHeader)
	if err != nil {
		return nil, dto.ScanQuality{}, fmt.Errorf("%w: %v", dto.ErrUnreadableImage, err)
	}

	return lines, dto.ScanQuality{Engine: "tesseract", OcrConfidence: conf}, nil
}

// recognizePDF extracts the PDF's text layer and falls back to page-image OCR
// for scanned documents.
func (s *ReceiptService) recognizePDF(pdfBytes []byte, password string) ([]string, dto.ScanQuality, error) {
	quality := dto.ScanQuality{Engine: "pdf-text"}

	lines, err := s.pdfProcessor.ExtractLines(pdfBytes)
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
		quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
	}

	if charCount(lines) >= minPDFTextChars {
		return lines, quality, nil
	}

	// Scanned PDF: OCR every embedded page image
	log.Println("PDF has little or no text layer, attempting image-based OCR")
	quality.Issues = append(quality.Issues, "scanned_pdf")
	quality.Engine = "tesseract"

	images, err := s.pdfProcessor.ExtractImages(pdfBytes, password)
	if err != nil {
		return nil, quality, fmt.Errorf("%w: %v", dto.ErrUnreadableImage, err)
	}

	var ocrLines []string
	var totalConf float64
	var pages int
	for idx, page := range images {
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, page); err != nil {
			log.Printf("Failed to encode page %d: %v", idx+1, err)
			continue
		}

		pageLines, conf, err := s.tesseractClient.ExtractLinesFromBytes(buf.Bytes(), ".png")
		if err != nil {
			log.Printf("Page %d OCR failed: %v", idx+1, err)
			continue
		}

		ocrLines = append(ocrLines, pageLines...)
		totalConf += conf
		pages++
	}

	if pages > 0 {
		quality.OcrConfidence = totalConf / float64(pages)
	}

	return ocrLines, quality, nil
}

// decodeBarcode looks for a transaction barcode on the receipt image. Receipts
// usually print Code128; QR codes turn up on newer POS systems. A miss is not
// an error, most receipts in the wild have neither.
func (s *ReceiptService) decodeBarcode(imageBytes []byte) string {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return ""
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ""
	}

	readers := []gozxing.Reader{
		oned.NewCode128Reader(),
		qrcode.NewQRCodeReader(),
	}

	for _, reader := range readers {
		if result, err := reader.Decode(bmp, nil); err == nil {
			log.Printf("Decoded receipt barcode, length %d", len(result.GetText()))
			return result.GetText()
		}
	}

	return ""
}

func charCount(lines []string) int {
	total := 0
	for _, line := range lines {
		total += len(strings.TrimSpace(line))
	}
	return total
}
