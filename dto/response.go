package dto

import "time"

// TaxResult is the derived tax figure for one regime. It is never persisted;
// it is recomputed on demand from a FinancialRecord.
type TaxResult struct {
	Regime           string  `json:"regime"`
	NetTaxableIncome float64 `json:"net_taxable_income"`
	TaxLiability     float64 `json:"tax_liability"`
}

// UploadResponse returns the extracted record for user review.
type UploadResponse struct {
	SessionID string           `json:"session_id"`
	Record    *FinancialRecord `json:"record"`
}

// CalculateResponse returns both regime computations plus the user's choice.
type CalculateResponse struct {
	SessionID      string    `json:"session_id"`
	SelectedRegime string    `json:"selected_regime"`
	OldRegime      TaxResult `json:"old_regime"`
	NewRegime      TaxResult `json:"new_regime"`
	Saved          bool      `json:"saved"`
}

// AdvisorQuestionResponse carries the generated advisory question.
type AdvisorQuestionResponse struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// AdvisorSuggestionsResponse carries the generated tax-saving suggestions.
type AdvisorSuggestionsResponse struct {
	SessionID   string   `json:"session_id"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
}

// ConversationLogEntry is one line of the append-only advisory log.
type ConversationLogEntry struct {
	SessionID   string    `json:"session_id"`
	Timestamp   time.Time `json:"timestamp"`
	Question    string    `json:"initial_question"`
	Answer      string    `json:"user_answer"`
	Suggestions []string  `json:"final_suggestions"`
}
