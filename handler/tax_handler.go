package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MkManish25/tax-advisor-webapp/dto"
	"github.com/MkManish25/tax-advisor-webapp/repository"
	"github.com/MkManish25/tax-advisor-webapp/tax"
)

// TaxHandler persists the reviewed record and returns both regime
// computations.
type TaxHandler struct {
	store  repository.FinancialStore
	logger zerolog.Logger
}

func NewTaxHandler(store repository.FinancialStore, logger zerolog.Logger) *TaxHandler {
	return &TaxHandler{
		store:  store,
		logger: logger.With().Str("handler", "tax").Logger(),
	}
}

// Calculate handles POST /api/v1/calculate. A failed save is logged and the
// computation proceeds from the submitted values; tax math does not depend on
// a successful write.
func (h *TaxHandler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBind(&req); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", err)
		return
	}
	if _, err := uuid.Parse(req.SessionID); err != nil {
		sendError(c, http.StatusBadRequest, "VALIDATION_FAILED", dto.ErrInvalidSessionID)
		return
	}

	rec := req.Record()

	saved := true
	if err := h.store.Upsert(c.Request.Context(), rec); err != nil {
		// Degraded mode: the user still gets their figures.
		h.logger.Error().Err(err).Str("session_id", rec.SessionID).Msg("failed to save financial record")
		saved = false
	}

	oldResult, newResult := tax.Compute(rec)

	h.logger.Info().Str("session_id", rec.SessionID).Str("regime", rec.TaxRegime).
		Float64("tax_old", oldResult.TaxLiability).Float64("tax_new", newResult.TaxLiability).
		Bool("saved", saved).Msg("tax computed")

	c.JSON(http.StatusOK, dto.CalculateResponse{
		SessionID:      rec.SessionID,
		SelectedRegime: rec.TaxRegime,
		OldRegime:      oldResult,
		NewRegime:      newResult,
		Saved:          saved,
	})
}
