package dto

// Tax regimes selectable by the user. New is the default.
const (
	RegimeOld = "old"
	RegimeNew = "new"
)

// DefaultStandardDeduction is applied when a document yields no usable data.
const DefaultStandardDeduction = 50000

// FinancialRecord is the canonical set of annual financial figures for one
// session. All monetary fields are annual, non-negative amounts.
type FinancialRecord struct {
	SessionID         string  `json:"session_id"`
	GrossSalary       float64 `json:"gross_salary"`
	BasicSalary       float64 `json:"basic_salary"`
	HRAReceived       float64 `json:"hra_received"`
	RentPaid          float64 `json:"rent_paid"`
	Deduction80C      float64 `json:"deduction_80c"`
	Deduction80D      float64 `json:"deduction_80d"`
	StandardDeduction float64 `json:"standard_deduction"`
	ProfessionalTax   float64 `json:"professional_tax"`
	TDS               float64 `json:"tds"`
	TaxRegime         string  `json:"tax_regime"`
}

// FieldNames lists the nine monetary keys in their canonical order, matching
// both the extraction prompt and the user_financials columns.
var FieldNames = []string{
	"gross_salary",
	"basic_salary",
	"hra_received",
	"rent_paid",
	"deduction_80c",
	"deduction_80d",
	"standard_deduction",
	"professional_tax",
	"tds",
}

// DefaultRecord returns the fallback record used when extraction produces no
// usable data: every field zero except the standard deduction.
func DefaultRecord() *FinancialRecord {
	return &FinancialRecord{
		StandardDeduction: DefaultStandardDeduction,
		TaxRegime:         RegimeNew,
	}
}

// Set assigns one of the nine monetary fields by its canonical key. Negative
// amounts are clamped to zero. Unknown keys are ignored.
func (r *FinancialRecord) Set(key string, amount float64) {
	if amount < 0 {
		amount = 0
	}
	switch key {
	case "gross_salary":
		r.GrossSalary = amount
	case "basic_salary":
		r.BasicSalary = amount
	case "hra_received":
		r.HRAReceived = amount
	case "rent_paid":
		r.RentPaid = amount
	case "deduction_80c":
		r.Deduction80C = amount
	case "deduction_80d":
		r.Deduction80D = amount
	case "standard_deduction":
		r.StandardDeduction = amount
	case "professional_tax":
		r.ProfessionalTax = amount
	case "tds":
		r.TDS = amount
	}
}

// Get returns one of the nine monetary fields by its canonical key.
func (r *FinancialRecord) Get(key string) float64 {
	switch key {
	case "gross_salary":
		return r.GrossSalary
	case "basic_salary":
		return r.BasicSalary
	case "hra_received":
		return r.HRAReceived
	case "rent_paid":
		return r.RentPaid
	case "deduction_80c":
		return r.Deduction80C
	case "deduction_80d":
		return r.Deduction80D
	case "standard_deduction":
		return r.StandardDeduction
	case "professional_tax":
		return r.ProfessionalTax
	case "tds":
		return r.TDS
	}
	return 0
}

// Normalize clamps negative amounts to zero and fills in the default regime.
func (r *FinancialRecord) Normalize() {
	for _, name := range FieldNames {
		if r.Get(name) < 0 {
			r.Set(name, 0)
		}
	}
	if r.TaxRegime != RegimeOld && r.TaxRegime != RegimeNew {
		r.TaxRegime = RegimeNew
	}
}
