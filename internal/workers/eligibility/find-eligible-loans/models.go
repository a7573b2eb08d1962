// internal/workers/eligibility/find-eligible-loans/models.go
package findeligibleloans

import "loan-marketplace-workers/internal/models"

type Input struct {
	ProfileID string `json:"profileId"`
	LoanType  string `json:"loanType,omitempty"`
}

type Output struct {
	Eligible          bool                    `json:"eligible"`
	MaxEligibleAmount float64                 `json:"maxEligibleAmount"`
	EligibilityScore  int                     `json:"eligibilityScore"`
	RecommendedLoans  []models.LoanProduct    `json:"recommendedLoans"`
	Recommendations   []models.Recommendation `json:"recommendations"`
	Reasons           []string                `json:"reasons"`
	SkippedLoans      []string                `json:"skippedLoans,omitempty"`
}
