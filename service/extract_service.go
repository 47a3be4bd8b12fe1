package service

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// PageOCR recognizes text in a single rendered page image.
type PageOCR interface {
	RecognizeImage(img image.Image) (string, error)
}

// ExtractService turns an uploaded salary document into raw text. The text
// layer is tried first; when it comes back shorter than the configured
// threshold the document is treated as scanned and every page image is OCRed,
// appending to whatever partial text the first pass produced.
type ExtractService struct {
	processor     PDFProcessor
	ocr           PageOCR
	maxFileSize   int64
	minTextLength int
	logger        zerolog.Logger
}

func NewExtractService(processor PDFProcessor, ocr PageOCR, maxFileSize int64, minTextLength int, logger zerolog.Logger) *ExtractService {
	return &ExtractService{
		processor:     processor,
		ocr:           ocr,
		maxFileSize:   maxFileSize,
		minTextLength: minTextLength,
		logger:        logger.With().Str("component", "extract_service").Logger(),
	}
}

// Extract reads the document at path and returns its text. The file is
// request-scoped: it is deleted before returning on every path, success or
// failure.
func (s *ExtractService) Extract(path string) (string, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to delete uploaded document")
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return "", &dto.ExtractionError{Stage: "text-layer", Err: err}
	}
	if info.Size() > s.maxFileSize {
		return "", dto.ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &dto.ExtractionError{Stage: "text-layer", Err: err}
	}

	text, err := s.processor.ExtractText(data)
	if err != nil {
		// A broken text layer is not fatal yet; the OCR pass below may still
		// recover the content.
		s.logger.Warn().Err(err).Msg("text-layer extraction failed, trying OCR")
		text = ""
	}

	if len(strings.TrimSpace(text)) >= s.minTextLength {
		s.logger.Info().Int("chars", len(text)).Msg("text layer sufficient, skipping OCR")
		return text, nil
	}

	s.logger.Info().Int("chars", len(strings.TrimSpace(text))).
		Msg("text layer below threshold, treating document as scanned")

	ocrText, err := s.recognizePages(data)
	if err != nil {
		return "", err
	}

	return text + ocrText, nil
}

func (s *ExtractService) recognizePages(data []byte) (string, error) {
	images, err := s.processor.ExtractImages(data)
	if err != nil {
		return "", &dto.ExtractionError{Stage: "rasterize", Err: err}
	}

	var combined strings.Builder
	for i, img := range images {
		pageText, err := s.ocr.RecognizeImage(img)
		if err != nil {
			return "", &dto.ExtractionError{Stage: "ocr", Err: fmt.Errorf("page %d: %w", i+1, err)}
		}
		combined.WriteString(pageText)
		combined.WriteString("\n")
	}

	s.logger.Info().Int("pages", len(images)).Int("chars", combined.Len()).Msg("OCR pass complete")
	return combined.String(), nil
}
