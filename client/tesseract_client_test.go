package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTempFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "upload.bin")
	assert.NoError(t, os.WriteFile(src, []byte("fake-image-bytes"), 0o644))

	f, err := os.Open(src)
	assert.NoError(t, err)
	defer f.Close()

	tc := NewTesseractClient("/usr/share/tesseract-ocr/5/tessdata/")

	tempPath, err := tc.CreateTempFile(f, "receipt.png")
	assert.NoError(t, err)
	defer os.Remove(tempPath)

	// The extension survives so Tesseract can sniff the image format
	assert.Equal(t, ".png", filepath.Ext(tempPath))

	copied, err := os.ReadFile(tempPath)
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake-image-bytes"), copied)
}
