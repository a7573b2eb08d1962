// internal/models/application.go
package models

import "time"

// Application statuses.
const (
	ApplicationStatusPending    = "pending"
	ApplicationStatusInProgress = "in_progress"
	ApplicationStatusProcessing = "processing"
	ApplicationStatusApproved   = "approved"
	ApplicationStatusSanctioned = "sanctioned"
	ApplicationStatusRejected   = "rejected"
)

// Application is a user's application for one loan product.
type Application struct {
	ApplicationID    string    `json:"applicationId" db:"application_id"`
	ProfileID        string    `json:"profileId" db:"profile_id"`
	LoanID           string    `json:"loanId" db:"loan_id"`
	Status           string    `json:"status" db:"status"`
	SanctionedAmount *float64  `json:"sanctionedAmount,omitempty" db:"sanctioned_amount"`
	AppliedAt        time.Time `json:"appliedAt" db:"applied_at"`
}

// ApplicationDetail is an application joined with its loan.
type ApplicationDetail struct {
	Application
	Loan LoanProduct `json:"loan"`
}

// ApplicationStats summarizes a profile's applications for the dashboard.
type ApplicationStats struct {
	TotalApplications int     `json:"totalApplications"`
	InProgress        int     `json:"inProgress"`
	Approved          int     `json:"approved"`
	TotalSanctioned   float64 `json:"totalSanctioned"`
}
