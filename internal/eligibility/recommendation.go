package eligibility

import (
	"fmt"
	"math"
	"strconv"

	"loan-marketplace-workers/internal/models"
)

// recommendedShare of a product's max amount is offered by default.
const recommendedShare = 0.6

// ProjectRecommendation derives the suggested amount, tenure and EMI for loan.
func ProjectRecommendation(profileID string, loan models.LoanProduct) (models.Recommendation, error) {
	if err := ValidateProduct(loan); err != nil {
		return models.Recommendation{}, err
	}

	// Equals MaxAmount*0.6 while the share stays below 1.
	amount := math.Min(loan.MaxAmount*recommendedShare, loan.MaxAmount)
	tenure := (loan.MinTenureMonths + loan.MaxTenureMonths) / 2

	emi, err := EstimateEMI(amount, loan.InterestRate, tenure)
	if err != nil {
		return models.Recommendation{}, fmt.Errorf("loan %s: %w", loan.LoanID, err)
	}

	return models.Recommendation{
		ProfileID:               profileID,
		LoanID:                  loan.LoanID,
		RecommendedAmount:       amount,
		RecommendedTenureMonths: tenure,
		EstimatedEMI:            emi,
		RecommendationReason:    RecommendationReason(loan),
	}, nil
}

// ProjectRecommendations projects every loan for the user and stamps the
// user's eligibility score on each. Malformed loans are skipped.
func ProjectRecommendations(profileID string, user models.UserProfile, loans []models.LoanProduct) []models.Recommendation {
	score := ComputeEligibilityScore(user)
	recs := make([]models.Recommendation, 0, len(loans))
	for _, loan := range loans {
		rec, err := ProjectRecommendation(profileID, loan)
		if err != nil {
			continue
		}
		rec.EligibilityScore = score
		recs = append(recs, rec)
	}
	return recs
}

// EstimateEMI returns the equated monthly installment for principal borrowed
// at annualRatePct over months. A zero rate repays principal evenly.
func EstimateEMI(principal, annualRatePct float64, months int) (float64, error) {
	if months <= 0 {
		return 0, fmt.Errorf("%w: tenure must be positive, got %d months", ErrInvalidInput, months)
	}
	if principal < 0 || annualRatePct < 0 || math.IsNaN(principal) || math.IsNaN(annualRatePct) {
		return 0, fmt.Errorf("%w: principal and rate must be non-negative", ErrInvalidInput)
	}

	r := annualRatePct / 100 / 12
	if r == 0 {
		return principal / float64(months), nil
	}
	growth := math.Pow(1+r, float64(months))
	return principal * r * growth / (growth - 1), nil
}

// RecommendationReason cites the product's rate and bank.
func RecommendationReason(loan models.LoanProduct) string {
	rate := strconv.FormatFloat(loan.InterestRate, 'f', -1, 64)
	return fmt.Sprintf("Best rate of %s%% from %s", rate, loan.BankName)
}
