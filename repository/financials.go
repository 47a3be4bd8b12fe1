package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

// FinancialStore persists one FinancialRecord per session id with
// last-writer-wins upsert semantics.
type FinancialStore interface {
	Upsert(ctx context.Context, rec *dto.FinancialRecord) error
	GetBySessionID(ctx context.Context, sessionID string) (*dto.FinancialRecord, error)
}

// FinancialsPostgres is the PostgreSQL implementation of FinancialStore.
type FinancialsPostgres struct {
	db *sql.DB
}

func NewFinancialsPostgres(db *sql.DB) *FinancialsPostgres {
	return &FinancialsPostgres{db: db}
}

var _ FinancialStore = (*FinancialsPostgres)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS user_financials (
	session_id UUID PRIMARY KEY,
	gross_salary NUMERIC(15, 2) NOT NULL DEFAULT 0,
	basic_salary NUMERIC(15, 2) NOT NULL DEFAULT 0,
	hra_received NUMERIC(15, 2) DEFAULT 0,
	rent_paid NUMERIC(15, 2) DEFAULT 0,
	deduction_80c NUMERIC(15, 2) DEFAULT 0,
	deduction_80d NUMERIC(15, 2) DEFAULT 0,
	standard_deduction NUMERIC(15, 2) DEFAULT 50000,
	professional_tax NUMERIC(15, 2) DEFAULT 0,
	tds NUMERIC(15, 2) DEFAULT 0,
	created_at TIMESTAMPTZ DEFAULT NOW()
)`

// EnsureSchema creates the user_financials table if it does not exist.
func (r *FinancialsPostgres) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create user_financials table: %w", err)
	}
	return nil
}

// Upsert inserts or fully overwrites the record for its session id. Two
// near-simultaneous writes for the same id resolve to whichever commits last;
// there is no optimistic concurrency check.
func (r *FinancialsPostgres) Upsert(ctx context.Context, rec *dto.FinancialRecord) error {
	const q = `
		INSERT INTO user_financials (session_id, gross_salary, basic_salary, hra_received, rent_paid, deduction_80c, deduction_80d, standard_deduction, professional_tax, tds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO UPDATE SET
			gross_salary = EXCLUDED.gross_salary,
			basic_salary = EXCLUDED.basic_salary,
			hra_received = EXCLUDED.hra_received,
			rent_paid = EXCLUDED.rent_paid,
			deduction_80c = EXCLUDED.deduction_80c,
			deduction_80d = EXCLUDED.deduction_80d,
			standard_deduction = EXCLUDED.standard_deduction,
			professional_tax = EXCLUDED.professional_tax,
			tds = EXCLUDED.tds
	`
	_, err := r.db.ExecContext(ctx, q,
		rec.SessionID,
		rec.GrossSalary,
		rec.BasicSalary,
		rec.HRAReceived,
		rec.RentPaid,
		rec.Deduction80C,
		rec.Deduction80D,
		rec.StandardDeduction,
		rec.ProfessionalTax,
		rec.TDS,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert financial record: %w", err)
	}
	return nil
}

// GetBySessionID fetches the record for a session, or dto.ErrSessionNotFound.
func (r *FinancialsPostgres) GetBySessionID(ctx context.Context, sessionID string) (*dto.FinancialRecord, error) {
	const q = `
		SELECT session_id, gross_salary, basic_salary, hra_received, rent_paid, deduction_80c, deduction_80d, standard_deduction, professional_tax, tds
		FROM user_financials
		WHERE session_id = $1
	`
	row := r.db.QueryRowContext(ctx, q, sessionID)

	var rec dto.FinancialRecord
	if err := row.Scan(
		&rec.SessionID,
		&rec.GrossSalary,
		&rec.BasicSalary,
		&rec.HRAReceived,
		&rec.RentPaid,
		&rec.Deduction80C,
		&rec.Deduction80D,
		&rec.StandardDeduction,
		&rec.ProfessionalTax,
		&rec.TDS,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dto.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch financial record: %w", err)
	}

	rec.TaxRegime = dto.RegimeNew
	return &rec, nil
}
