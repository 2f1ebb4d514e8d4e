package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor handles emailed receipt PDFs: born-digital ones keep their text
// layer, scanned ones only hold page images that need OCR.
type PDFProcessor interface {
	ExtractLines(pdfData []byte) ([]string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractLines pulls the text layer out of a PDF, one string per text row.
// Rows map onto the same top-to-bottom region ordering the OCR engines
// produce, which is what the receipt extractors expect.
func (p *pdfProcessor) ExtractLines(pdfData []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, err
	}

	var lines []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			var rowText strings.Builder
			for _, word := range row.Content {
				rowText.WriteString(word.S)
			}
			line := strings.TrimSpace(rowText.String())
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// ExtractImages renders a scanned PDF's embedded page images so they can be
// OCR'd. An optional user password unlocks encrypted receipts.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	// Create a temporary directory for extraction
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir) // Cleanup

	// Create a temporary file for the PDF
	tempFile, err := os.CreateTemp("", "receipt-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name()) // Cleanup file

	if _, err := tempFile.Write(pdfData); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	// Extract images to tempDir; nil selectedPages means every page
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	// Read extracted images
	var images []image.Image
	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgPath := filepath.Join(tempDir, file.Name())
		imgFile, err := os.Open(imgPath)
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
