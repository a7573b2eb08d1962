// internal/models/loan.go
package models

// Loan types offered in the catalog.
const (
	LoanTypePersonal  = "personal"
	LoanTypeHome      = "home"
	LoanTypeAuto      = "auto"
	LoanTypeBusiness  = "business"
	LoanTypeEducation = "education"
	LoanTypeGold      = "gold"
)

// LoanTypes lists every valid loan_type value.
var LoanTypes = []string{
	LoanTypePersonal, LoanTypeHome, LoanTypeAuto, LoanTypeBusiness, LoanTypeEducation, LoanTypeGold,
}

// LoanProduct is one row of the loan catalog.
type LoanProduct struct {
	LoanID          string   `json:"loanId" db:"loan_id"`
	BankName        string   `json:"bankName" db:"bank_name"`
	LoanType        string   `json:"loanType" db:"loan_type"`
	InterestRate    float64  `json:"interestRate" db:"interest_rate"`
	MinAmount       float64  `json:"minAmount" db:"min_amount"`
	MaxAmount       float64  `json:"maxAmount" db:"max_amount"`
	MinTenureMonths int      `json:"minTenureMonths" db:"min_tenure_months"`
	MaxTenureMonths int      `json:"maxTenureMonths" db:"max_tenure_months"`
	MinIncome       float64  `json:"minIncome" db:"min_income"`
	MinCreditScore  int      `json:"minCreditScore" db:"min_credit_score"`
	MinAge          int      `json:"minAge,omitempty" db:"min_age"`
	MaxAge          int      `json:"maxAge,omitempty" db:"max_age"`
	EmploymentTypes []string `json:"employmentTypes,omitempty" db:"employment_types"`
	ProcessingFee   float64  `json:"processingFee,omitempty" db:"processing_fee"`
	Features        []string `json:"features,omitempty" db:"features"`
}

// IsValidLoanType reports whether t is a known loan type.
func IsValidLoanType(t string) bool {
	for _, lt := range LoanTypes {
		if lt == t {
			return true
		}
	}
	return false
}
