// Package eligibility decides which catalog products a borrower qualifies for,
// scores the borrower and projects a recommendation per product.
//
// Every function here is pure and safe for concurrent use. Callers load the
// profile and catalog and persist whatever they need from the result.
package eligibility

import (
	"cmp"
	"math"
	"slices"

	"loan-marketplace-workers/internal/models"
)

const (
	// MaxRecommendedLoans bounds EligibilityResult.RecommendedLoans.
	MaxRecommendedLoans = 5

	// incomeMultiplier caps the eligible amount at five years of income.
	incomeMultiplier = 60
)

// FilterEligibleLoans returns the products whose income and credit gates the
// user clears, in catalog order.
func FilterEligibleLoans(user models.UserProfile, catalog []models.LoanProduct) []models.LoanProduct {
	eligible := make([]models.LoanProduct, 0, len(catalog))
	for _, loan := range catalog {
		if user.MonthlyIncome >= loan.MinIncome && user.CreditScore >= loan.MinCreditScore {
			eligible = append(eligible, loan)
		}
	}
	return eligible
}

// ComputeMaxEligibleAmount returns min(income*60, largest max_amount).
// An empty eligible set yields 0.
func ComputeMaxEligibleAmount(user models.UserProfile, eligible []models.LoanProduct) float64 {
	if len(eligible) == 0 {
		return 0
	}
	largest := eligible[0].MaxAmount
	for _, loan := range eligible[1:] {
		largest = math.Max(largest, loan.MaxAmount)
	}
	return math.Min(user.MonthlyIncome*incomeMultiplier, largest)
}

// RankLoans orders products by interest rate ascending, then by max amount
// descending. Ties on both keys keep their input order. The input is not modified.
func RankLoans(eligible []models.LoanProduct) []models.LoanProduct {
	ranked := slices.Clone(eligible)
	slices.SortStableFunc(ranked, func(a, b models.LoanProduct) int {
		if c := cmp.Compare(a.InterestRate, b.InterestRate); c != 0 {
			return c
		}
		return cmp.Compare(b.MaxAmount, a.MaxAmount)
	})
	return ranked
}

// FindEligibleLoans runs the full evaluation of user against catalog.
// Malformed catalog rows are left out and reported in SkippedLoans.
func FindEligibleLoans(user models.UserProfile, catalog []models.LoanProduct) models.EligibilityResult {
	valid, skipped := partitionValid(catalog)

	eligible := FilterEligibleLoans(user, valid)
	ranked := RankLoans(eligible)
	top := ranked[:min(len(ranked), MaxRecommendedLoans)]
	isEligible := len(eligible) > 0

	return models.EligibilityResult{
		Eligible:          isEligible,
		MaxEligibleAmount: ComputeMaxEligibleAmount(user, eligible),
		EligibilityScore:  ComputeEligibilityScore(user),
		RecommendedLoans:  top,
		Reasons:           GenerateReasons(user, isEligible),
		SkippedLoans:      skipped,
	}
}

func partitionValid(catalog []models.LoanProduct) ([]models.LoanProduct, []string) {
	valid := make([]models.LoanProduct, 0, len(catalog))
	var skipped []string
	for _, loan := range catalog {
		if err := ValidateProduct(loan); err != nil {
			skipped = append(skipped, loan.LoanID)
			continue
		}
		valid = append(valid, loan)
	}
	return valid, skipped
}
