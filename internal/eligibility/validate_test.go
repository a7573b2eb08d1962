package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-marketplace-workers/internal/models"
)

func TestValidateProduct(t *testing.T) {
	valid := sampleCatalog()[0]

	tests := []struct {
		name    string
		mutate  func(l *models.LoanProduct)
		wantErr string
	}{
		{name: "valid product", mutate: func(l *models.LoanProduct) {}},
		{name: "zero rate is allowed", mutate: func(l *models.LoanProduct) { l.InterestRate = 0 }},
		{name: "negative rate", mutate: func(l *models.LoanProduct) { l.InterestRate = -1 }, wantErr: "interest_rate must be non-negative"},
		{name: "negative amount", mutate: func(l *models.LoanProduct) { l.MinAmount = -5 }, wantErr: "min_amount must be non-negative"},
		{name: "inverted amounts", mutate: func(l *models.LoanProduct) { l.MinAmount = l.MaxAmount + 1 }, wantErr: "min_amount exceeds max_amount"},
		{name: "zero tenure", mutate: func(l *models.LoanProduct) { l.MinTenureMonths = 0 }, wantErr: "tenure bounds must be positive"},
		{name: "inverted tenure", mutate: func(l *models.LoanProduct) { l.MinTenureMonths = 72 }, wantErr: "min_tenure_months exceeds max_tenure_months"},
		{name: "negative credit gate", mutate: func(l *models.LoanProduct) { l.MinCreditScore = -1 }, wantErr: "min_credit_score must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := valid
			tt.mutate(&loan)

			err := ValidateProduct(loan)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), `"L001"`)
		})
	}
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile(highProfileUser()))
	assert.NoError(t, ValidateProfile(models.UserProfile{}))

	err := ValidateProfile(models.UserProfile{ProfileID: "U010", MonthlyIncome: -1, ExistingEMI: -2, YearsEmployed: -3})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "monthly_income must be non-negative")
	assert.Contains(t, err.Error(), "existing_emi must be non-negative")
	assert.Contains(t, err.Error(), "years_employed must be non-negative")
}
