package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"loan-marketplace-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

var loanColumnNames = []string{
	"loan_id", "bank_name", "loan_type", "interest_rate", "min_amount", "max_amount",
	"min_tenure_months", "max_tenure_months", "min_income", "min_credit_score",
	"min_age", "max_age", "employment_types", "processing_fee", "features",
}

func loanRows() *sqlmock.Rows {
	return sqlmock.NewRows(loanColumnNames).
		AddRow("L001", "HDFC Bank", "personal", 10.5, 50000.0, 4000000.0, 12, 60, 25000.0, 700, 21, 60, "{Salaried,Self-Employed}", 999.0, "{\"No collateral\",\"Quick disbursal\"}").
		AddRow("L004", "Axis Bank", "auto", 9.0, 100000.0, 1500000.0, 12, 84, 20000.0, 600, 0, 0, "{}", 0.0, "{}")
}

var profileColumnNames = []string{
	"profile_id", "auth_id", "name", "age", "city", "email", "phone", "monthly_income",
	"employment_type", "years_employed", "credit_score", "existing_emi", "created_at", "updated_at",
}

func testProfile() models.UserProfile {
	return models.UserProfile{
		ProfileID:      "U001",
		AuthID:         "auth-123",
		Name:           "Asha Rao",
		Age:            32,
		City:           "Pune",
		Email:          "asha@example.com",
		Phone:          "+919800000001",
		MonthlyIncome:  120000,
		EmploymentType: models.EmploymentSalaried,
		YearsEmployed:  6,
		CreditScore:    780,
		ExistingEMI:    10000,
		CreatedAt:      fixedTime,
		UpdatedAt:      fixedTime,
	}
}

func profileRow(p models.UserProfile) *sqlmock.Rows {
	return sqlmock.NewRows(profileColumnNames).AddRow(
		p.ProfileID, p.AuthID, p.Name, p.Age, p.City, p.Email, p.Phone, p.MonthlyIncome,
		p.EmploymentType, p.YearsEmployed, p.CreditScore, p.ExistingEMI, p.CreatedAt, p.UpdatedAt,
	)
}
