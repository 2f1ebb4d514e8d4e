package client

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractLinesFromFile runs Tesseract over an uploaded image and returns one
// string per detected text line, top to bottom, plus the mean word confidence.
func (tc *TesseractClient) ExtractLinesFromFile(fileHeader *multipart.FileHeader) ([]string, float64, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempFile, err := tc.CreateTempFile(file, fileHeader.Filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	return tc.ExtractLines(tempFile)
}

// ExtractLinesFromBytes OCRs an in-memory image (e.g. a rendered PDF page)
func (tc *TesseractClient) ExtractLinesFromBytes(data []byte, ext string) ([]string, float64, error) {
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return nil, 0, err
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return nil, 0, err
	}
	tempFile.Close()

	return tc.ExtractLines(tempFile.Name())
}

// CreateTempFile creates a temporary file from uploaded content
func (tc *TesseractClient) CreateTempFile(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

// ExtractLines extracts per-line text regions and their confidence from an
// image file. Text-line granularity matters here: the receipt extractors work
// on one string per detected region, in Tesseract's natural top-to-bottom
// scan order.
func (tc *TesseractClient) ExtractLines(filePath string) ([]string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage("eng"); err != nil {
		return nil, 0, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return nil, 0, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		// Fall back to plain text extraction with zero confidence
		text, textErr := client.Text()
		if textErr != nil {
			return nil, 0, fmt.Errorf("failed to extract text: %w", textErr)
		}
		return SplitLines(text), 0, nil
	}

	var lines []string
	var totalConf float64
	var count int
	for _, box := range boxes {
		line := strings.TrimSpace(box.Word)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		totalConf += box.Confidence
		count++
	}

	avgConf := 0.0
	if count > 0 {
		avgConf = totalConf / float64(count)
	}

	return lines, avgConf, nil
}

// SplitLines turns a raw OCR text blob into trimmed, non-empty lines while
// preserving order
func SplitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
