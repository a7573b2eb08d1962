// internal/workers/application/apply-loan/models.go
package applyloan

import "time"

type Input struct {
	ProfileID string `json:"profileId"`
	LoanID    string `json:"loanId"`
}

type Output struct {
	ApplicationID string    `json:"applicationId"`
	ProfileID     string    `json:"profileId"`
	LoanID        string    `json:"loanId"`
	BankName      string    `json:"bankName"`
	LoanType      string    `json:"loanType"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
}
