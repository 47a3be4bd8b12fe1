package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// UploadHandler accepts a salary document, runs the extraction pipeline and
// returns the structured record for user review.
type UploadHandler struct {
	extractor   TextExtractor
	fields      FieldExtractor
	uploadDir   string
	maxFileSize int64
	logger      zerolog.Logger
}

func NewUploadHandler(extractor TextExtractor, fields FieldExtractor, uploadDir string, maxFileSize int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		extractor:   extractor,
		fields:      fields,
		uploadDir:   uploadDir,
		maxFileSize: maxFileSize,
		logger:      logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/v1/upload. The document is saved under a fresh
// session id, extracted, and deleted; extraction owns the file's lifetime.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", dto.ErrNoFile)
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", dto.ErrInvalidFileType)
		return
	}
	if fileHeader.Size > h.maxFileSize {
		sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", dto.ErrFileTooLarge)
		return
	}

	sessionID := uuid.NewString()
	savePath := filepath.Join(h.uploadDir, sessionID+"_"+filepath.Base(fileHeader.Filename))

	if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
		h.logger.Error().Err(err).Msg("failed to save uploaded document")
		sendError(c, http.StatusInternalServerError, "UPLOAD_FAILED", err)
		return
	}

	h.logger.Info().Str("session_id", sessionID).Str("filename", fileHeader.Filename).
		Int64("size", fileHeader.Size).Msg("processing uploaded document")

	text, err := h.extractor.Extract(savePath)
	if err != nil {
		if dto.IsValidation(err) {
			sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", err)
			return
		}
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("document extraction failed")
		sendError(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", err)
		return
	}

	rec := h.fields.ExtractFields(c.Request.Context(), text)
	rec.SessionID = sessionID

	c.JSON(http.StatusOK, dto.UploadResponse{
		SessionID: sessionID,
		Record:    rec,
	})
}

// EmptyForm handles GET /api/v1/form: a blank record with a fresh session id
// for users entering figures by hand without a document.
func (h *UploadHandler) EmptyForm(c *gin.Context) {
	rec := dto.DefaultRecord()
	rec.SessionID = uuid.NewString()

	c.JSON(http.StatusOK, dto.UploadResponse{
		SessionID: rec.SessionID,
		Record:    rec,
	})
}
