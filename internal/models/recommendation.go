// internal/models/recommendation.go
package models

import "time"

// EligibilityResult is the engine output for one profile against one catalog.
type EligibilityResult struct {
	Eligible          bool          `json:"eligible"`
	MaxEligibleAmount float64       `json:"maxEligibleAmount"`
	EligibilityScore  int           `json:"eligibilityScore"`
	RecommendedLoans  []LoanProduct `json:"recommendedLoans"`
	Reasons           []string      `json:"reasons"`
	SkippedLoans      []string      `json:"skippedLoans,omitempty"`
}

// Recommendation is keyed by (ProfileID, LoanID); at most one exists per pair.
type Recommendation struct {
	RecoID                  int64     `json:"recoId,omitempty" db:"reco_id"`
	ProfileID               string    `json:"profileId" db:"profile_id"`
	LoanID                  string    `json:"loanId" db:"loan_id"`
	EligibilityScore        int       `json:"eligibilityScore" db:"eligibility_score"`
	RecommendedAmount       float64   `json:"recommendedAmount" db:"recommended_amount"`
	RecommendedTenureMonths int       `json:"recommendedTenureMonths" db:"recommended_tenure"`
	EstimatedEMI            float64   `json:"estimatedEmi" db:"estimated_emi"`
	RecommendationReason    string    `json:"recommendationReason" db:"recommendation_reason"`
	RecommendedAt           time.Time `json:"recommendedAt,omitempty" db:"recommended_at"`
}

// RecommendationDetail is a stored recommendation joined with its loan.
type RecommendationDetail struct {
	Recommendation
	Loan LoanProduct `json:"loan"`
}
