package client

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"
)

// TesseractClient runs OCR over page images rendered from scanned documents.
type TesseractClient struct {
	dataPath string
	logger   zerolog.Logger
}

func NewTesseractClient(dataPath string, logger zerolog.Logger) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		logger:   logger.With().Str("component", "tesseract_client").Logger(),
	}
}

// RecognizeImage extracts text from a single page image. The image is staged
// as a temporary PNG because Tesseract reads from the filesystem; the file is
// removed before returning on every path.
func (tc *TesseractClient) RecognizeImage(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if err := png.Encode(tempFile, img); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}
	tempFile.Close()

	return tc.recognizeFile(tempFile.Name())
}

func (tc *TesseractClient) recognizeFile(filePath string) (string, error) {
	ocr := gosseract.NewClient()
	defer ocr.Close()

	ocr.SetTessdataPrefix(tc.dataPath)

	if err := ocr.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := ocr.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := ocr.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	tc.logger.Debug().Int("chars", len(text)).Msg("OCR page complete")
	return text, nil
}
