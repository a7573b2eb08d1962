package eligibility

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"loan-marketplace-workers/internal/models"
)

// ErrInvalidInput marks a profile or product the engine refuses to evaluate.
var ErrInvalidInput = errors.New("invalid input")

// ValidateProduct rejects negative amounts or thresholds, inverted bounds and
// non-positive tenures.
func ValidateProduct(loan models.LoanProduct) error {
	var problems []string

	amounts := []struct {
		field string
		value float64
	}{
		{"interest_rate", loan.InterestRate},
		{"min_amount", loan.MinAmount},
		{"max_amount", loan.MaxAmount},
		{"min_income", loan.MinIncome},
		{"min_credit_score", float64(loan.MinCreditScore)},
		{"processing_fee", loan.ProcessingFee},
	}
	for _, a := range amounts {
		if a.value < 0 || math.IsNaN(a.value) {
			problems = append(problems, a.field+" must be non-negative")
		}
	}

	if loan.MinAmount > loan.MaxAmount {
		problems = append(problems, "min_amount exceeds max_amount")
	}
	if loan.MinTenureMonths <= 0 || loan.MaxTenureMonths <= 0 {
		problems = append(problems, "tenure bounds must be positive")
	} else if loan.MinTenureMonths > loan.MaxTenureMonths {
		problems = append(problems, "min_tenure_months exceeds max_tenure_months")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: loan %q: %s", ErrInvalidInput, loan.LoanID, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateProfile rejects negative financial fields.
func ValidateProfile(user models.UserProfile) error {
	var problems []string
	if user.MonthlyIncome < 0 || math.IsNaN(user.MonthlyIncome) {
		problems = append(problems, "monthly_income must be non-negative")
	}
	if user.ExistingEMI < 0 || math.IsNaN(user.ExistingEMI) {
		problems = append(problems, "existing_emi must be non-negative")
	}
	if user.YearsEmployed < 0 {
		problems = append(problems, "years_employed must be non-negative")
	}
	if user.CreditScore < 0 {
		problems = append(problems, "credit_score must be non-negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: profile %q: %s", ErrInvalidInput, user.ProfileID, strings.Join(problems, "; "))
	}
	return nil
}
