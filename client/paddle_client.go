package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// PaddleClient wraps a PaddleOCR REST endpoint. PaddleOCR copes better with
// crumpled or low-contrast receipt photos than Tesseract, so when an endpoint
// is configured it runs first and Tesseract stays the fallback.
type PaddleClient struct {
	apiURL string
}

// NewPaddleClient creates a client for the given PaddleOCR API URL.
// Returns nil when no URL is configured; callers treat a nil client as
// "Paddle not available".
func NewPaddleClient(apiURL string) *PaddleClient {
	if apiURL == "" {
		return nil
	}

	log.Printf("PaddleOCR client initialized with endpoint %s", apiURL)

	return &PaddleClient{apiURL: apiURL}
}

// ExtractLines sends image bytes to the PaddleOCR API and returns one string
// per recognized text region, in the engine's scan order, plus the mean
// region confidence.
func (p *PaddleClient) ExtractLines(imageData []byte) ([]string, float64, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	payload := map[string]interface{}{
		"images": []string{encoded},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := http.Post(p.apiURL, "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, 0, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results [][]struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var lines []string
	var totalConf float64
	if len(result.Results) > 0 {
		for _, region := range result.Results[0] {
			if region.Text == "" {
				continue
			}
			lines = append(lines, region.Text)
			totalConf += region.Confidence
		}
	}

	if len(lines) == 0 {
		return nil, 0, fmt.Errorf("PaddleOCR detected no text regions")
	}

	avgConf := totalConf / float64(len(lines))
	log.Printf("PaddleOCR recognized %d text regions", len(lines))

	return lines, avgConf, nil
}
