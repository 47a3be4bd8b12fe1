// Package tax computes Indian income tax liability for FY 2024-25 under the
// old and new regimes. All functions are pure: same record in, same figures
// out, no I/O and no state.
package tax

import "github.com/MkManish25/tax-advisor-webapp/dto"

// CessRate is the health and education cess applied on top of bracket tax.
const CessRate = 0.04

// NetTaxableIncomeOld returns gross salary minus the deductions allowed under
// the old regime, floored at zero.
func NetTaxableIncomeOld(rec *dto.FinancialRecord) float64 {
	deductions := rec.StandardDeduction +
		rec.ProfessionalTax +
		rec.Deduction80C +
		rec.Deduction80D
	return clampNonNegative(rec.GrossSalary - deductions)
}

// NetTaxableIncomeNew returns gross salary minus the standard deduction. No
// other deduction applies under the new regime.
func NetTaxableIncomeNew(rec *dto.FinancialRecord) float64 {
	return clampNonNegative(rec.GrossSalary - rec.StandardDeduction)
}

// CalculateOldRegimeTax returns the tax liability for a net taxable income
// under the old regime schedule, including the 4% cess.
func CalculateOldRegimeTax(netTaxableIncome float64) float64 {
	net := clampNonNegative(netTaxableIncome)

	var bracketTax float64
	switch {
	case net <= 250000:
		bracketTax = 0
	case net <= 500000:
		bracketTax = (net - 250000) * 0.05
	case net <= 1000000:
		bracketTax = 12500 + (net-500000)*0.20
	default:
		bracketTax = 112500 + (net-1000000)*0.30
	}

	return bracketTax * (1 + CessRate)
}

// CalculateNewRegimeTax returns the tax liability for a net taxable income
// under the new regime schedule, including the 4% cess.
func CalculateNewRegimeTax(netTaxableIncome float64) float64 {
	net := clampNonNegative(netTaxableIncome)

	var bracketTax float64
	switch {
	case net <= 300000:
		bracketTax = 0
	case net <= 600000:
		bracketTax = (net - 300000) * 0.05
	case net <= 900000:
		bracketTax = 15000 + (net-600000)*0.10
	case net <= 1200000:
		bracketTax = 45000 + (net-900000)*0.15
	case net <= 1500000:
		bracketTax = 90000 + (net-1200000)*0.20
	default:
		bracketTax = 150000 + (net-1500000)*0.30
	}

	return bracketTax * (1 + CessRate)
}

// Compute returns both regime results for a record.
func Compute(rec *dto.FinancialRecord) (dto.TaxResult, dto.TaxResult) {
	netOld := NetTaxableIncomeOld(rec)
	netNew := NetTaxableIncomeNew(rec)
	oldResult := dto.TaxResult{
		Regime:           dto.RegimeOld,
		NetTaxableIncome: netOld,
		TaxLiability:     CalculateOldRegimeTax(netOld),
	}
	newResult := dto.TaxResult{
		Regime:           dto.RegimeNew,
		NetTaxableIncome: netNew,
		TaxLiability:     CalculateNewRegimeTax(netNew),
	}
	return oldResult, newResult
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
