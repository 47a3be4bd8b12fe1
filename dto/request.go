package dto

import (
	"strconv"
	"strings"
)

// CalculateRequest carries the reviewed form values. Fields arrive as strings
// so a blank input degrades to zero instead of a binding failure.
type CalculateRequest struct {
	SessionID         string `form:"session_id" json:"session_id" binding:"required"`
	GrossSalary       string `form:"gross_salary" json:"gross_salary"`
	BasicSalary       string `form:"basic_salary" json:"basic_salary"`
	HRAReceived       string `form:"hra_received" json:"hra_received"`
	RentPaid          string `form:"rent_paid" json:"rent_paid"`
	Deduction80C      string `form:"deduction_80c" json:"deduction_80c"`
	Deduction80D      string `form:"deduction_80d" json:"deduction_80d"`
	StandardDeduction string `form:"standard_deduction" json:"standard_deduction"`
	ProfessionalTax   string `form:"professional_tax" json:"professional_tax"`
	TDS               string `form:"tds" json:"tds"`
	TaxRegime         string `form:"tax_regime" json:"tax_regime"`
}

// Record coerces the string form values into a normalized FinancialRecord.
func (req *CalculateRequest) Record() *FinancialRecord {
	rec := &FinancialRecord{
		SessionID:         req.SessionID,
		GrossSalary:       ParseAmount(req.GrossSalary),
		BasicSalary:       ParseAmount(req.BasicSalary),
		HRAReceived:       ParseAmount(req.HRAReceived),
		RentPaid:          ParseAmount(req.RentPaid),
		Deduction80C:      ParseAmount(req.Deduction80C),
		Deduction80D:      ParseAmount(req.Deduction80D),
		StandardDeduction: ParseAmount(req.StandardDeduction),
		ProfessionalTax:   ParseAmount(req.ProfessionalTax),
		TDS:               ParseAmount(req.TDS),
		TaxRegime:         req.TaxRegime,
	}
	rec.Normalize()
	return rec
}

// AdvisorRequest carries one advisory exchange: the question previously shown
// to the user and their free-text answer.
type AdvisorRequest struct {
	Question string `form:"question" json:"question" binding:"required"`
	Answer   string `form:"answer" json:"answer" binding:"required"`
}

// ParseAmount converts a form value to a non-negative amount. Thousand
// separators and a leading currency marker are tolerated; anything that still
// fails to parse, and any negative value, coerces to zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "₹$ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
