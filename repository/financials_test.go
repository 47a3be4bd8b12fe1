package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MkManish25/tax-advisor-webapp/dto"
)

const testSessionID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

func testFinancialRecord() *dto.FinancialRecord {
	return &dto.FinancialRecord{
		SessionID:         testSessionID,
		GrossSalary:       1200000,
		BasicSalary:       600000,
		HRAReceived:       240000,
		RentPaid:          300000,
		Deduction80C:      150000,
		Deduction80D:      25000,
		StandardDeduction: 50000,
		ProfessionalTax:   2400,
		TDS:               90000,
	}
}

func TestFinancialsUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFinancialsPostgres(db)
	rec := testFinancialRecord()

	mock.ExpectExec("INSERT INTO user_financials").
		WithArgs(rec.SessionID, rec.GrossSalary, rec.BasicSalary, rec.HRAReceived, rec.RentPaid,
			rec.Deduction80C, rec.Deduction80D, rec.StandardDeduction, rec.ProfessionalTax, rec.TDS).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(context.Background(), rec)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second write for the same session id runs the same single statement; the
// ON CONFLICT clause overwrites in place, so no duplicate row can appear.
func TestFinancialsUpsertOverwrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFinancialsPostgres(db)

	first := testFinancialRecord()
	second := testFinancialRecord()
	second.GrossSalary = 1500000

	mock.ExpectExec("INSERT INTO user_financials").
		WithArgs(first.SessionID, first.GrossSalary, first.BasicSalary, first.HRAReceived, first.RentPaid,
			first.Deduction80C, first.Deduction80D, first.StandardDeduction, first.ProfessionalTax, first.TDS).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_financials").
		WithArgs(second.SessionID, second.GrossSalary, second.BasicSalary, second.HRAReceived, second.RentPaid,
			second.Deduction80C, second.Deduction80D, second.StandardDeduction, second.ProfessionalTax, second.TDS).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), first))
	require.NoError(t, repo.Upsert(context.Background(), second))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialsGetBySessionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFinancialsPostgres(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"session_id", "gross_salary", "basic_salary", "hra_received", "rent_paid",
			"deduction_80c", "deduction_80d", "standard_deduction", "professional_tax", "tds",
		}).AddRow(testSessionID, 1200000.0, 600000.0, 240000.0, 300000.0, 150000.0, 25000.0, 50000.0, 2400.0, 90000.0)

		mock.ExpectQuery("SELECT (.+) FROM user_financials WHERE session_id =").
			WithArgs(testSessionID).
			WillReturnRows(rows)

		rec, err := repo.GetBySessionID(context.Background(), testSessionID)

		require.NoError(t, err)
		assert.Equal(t, testSessionID, rec.SessionID)
		assert.Equal(t, 1200000.0, rec.GrossSalary)
		assert.Equal(t, 50000.0, rec.StandardDeduction)
		assert.Equal(t, dto.RegimeNew, rec.TaxRegime)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM user_financials WHERE session_id =").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.GetBySessionID(context.Background(), "missing")

		assert.ErrorIs(t, err, dto.ErrSessionNotFound)
		assert.Nil(t, rec)
	})
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFinancialsPostgres(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS user_financials").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
