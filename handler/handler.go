package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// TextExtractor produces raw text from an uploaded document file and deletes
// the file when done.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// FieldExtractor turns raw text into a complete, defaulted FinancialRecord.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) *dto.FinancialRecord
}

// Advisor runs the two-step advisory dialogue.
type Advisor interface {
	Question(ctx context.Context, rec *dto.FinancialRecord) string
	Suggestions(ctx context.Context, rec *dto.FinancialRecord, question, answer string) []string
}

// sendError writes the structured error body shared by all endpoints.
func sendError(c *gin.Context, statusCode int, code string, err error) {
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    statusCode,
	})
}

// sendSessionNotFound tells the user to restart the flow; the id they hold
// does not resolve to a stored record, which is terminal for this request.
func sendSessionNotFound(c *gin.Context) {
	sendError(c, http.StatusNotFound, "SESSION_NOT_FOUND",
		errors.New("session not found, please start over by uploading your document again"))
}
