package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/dto"
	"github.com/MkManish25/tax-advisor-webapp/repository"
)

// AdvisorHandler runs the advisory dialogue over a previously stored record.
// Both steps require the record to exist; an unknown session id sends the
// user back to the start of the flow.
type AdvisorHandler struct {
	store   repository.FinancialStore
	advisor Advisor
	logger  zerolog.Logger
}

func NewAdvisorHandler(store repository.FinancialStore, advisor Advisor, logger zerolog.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		store:   store,
		advisor: advisor,
		logger:  logger.With().Str("handler", "advisor").Logger(),
	}
}

// Question handles GET /api/v1/advisor/:session_id.
func (h *AdvisorHandler) Question(c *gin.Context) {
	rec, ok := h.loadRecord(c)
	if !ok {
		return
	}

	question := h.advisor.Question(c.Request.Context(), rec)

	c.JSON(http.StatusOK, dto.AdvisorQuestionResponse{
		SessionID: rec.SessionID,
		Question:  question,
	})
}

// Suggestions handles POST /api/v1/advisor/:session_id.
func (h *AdvisorHandler) Suggestions(c *gin.Context) {
	var req dto.AdvisorRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", err)
		return
	}

	rec, ok := h.loadRecord(c)
	if !ok {
		return
	}

	suggestions := h.advisor.Suggestions(c.Request.Context(), rec, req.Question, req.Answer)

	c.JSON(http.StatusOK, dto.AdvisorSuggestionsResponse{
		SessionID:   rec.SessionID,
		Question:    req.Question,
		Answer:      req.Answer,
		Suggestions: suggestions,
	})
}

func (h *AdvisorHandler) loadRecord(c *gin.Context) (*dto.FinancialRecord, bool) {
	sessionID := c.Param("session_id")

	rec, err := h.store.GetBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, dto.ErrSessionNotFound) {
			sendSessionNotFound(c)
			return nil, false
		}
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load financial record")
		sendError(c, http.StatusInternalServerError, "STORE_UNAVAILABLE", err)
		return nil, false
	}

	return rec, true
}
