// internal/workers/catalog/search-loans/models.go
package searchloans

import "loan-marketplace-workers/internal/models"

type Input struct {
	LoanType      string  `json:"loanType,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	MonthlyIncome float64 `json:"monthlyIncome,omitempty"`
	CreditScore   int     `json:"creditScore,omitempty"`
	Pagination    struct {
		From int `json:"from"`
		Size int `json:"size"`
	} `json:"pagination"`
}

type Output struct {
	Loans     []models.LoanProduct `json:"loans"`
	TotalHits int64                `json:"totalHits"`
	Took      int                  `json:"took"`
}

// loanDocument is the indexed shape of a catalog row.
type loanDocument struct {
	LoanID          string   `json:"loan_id"`
	BankName        string   `json:"bank_name"`
	LoanType        string   `json:"loan_type"`
	InterestRate    float64  `json:"interest_rate"`
	MinAmount       float64  `json:"min_amount"`
	MaxAmount       float64  `json:"max_amount"`
	MinTenureMonths int      `json:"min_tenure_months"`
	MaxTenureMonths int      `json:"max_tenure_months"`
	MinIncome       float64  `json:"min_income"`
	MinCreditScore  int      `json:"min_credit_score"`
	MinAge          int      `json:"min_age"`
	MaxAge          int      `json:"max_age"`
	EmploymentTypes []string `json:"employment_types"`
	ProcessingFee   float64  `json:"processing_fee"`
	Features        []string `json:"features"`
}

func (d loanDocument) product() models.LoanProduct {
	return models.LoanProduct{
		LoanID:          d.LoanID,
		BankName:        d.BankName,
		LoanType:        d.LoanType,
		InterestRate:    d.InterestRate,
		MinAmount:       d.MinAmount,
		MaxAmount:       d.MaxAmount,
		MinTenureMonths: d.MinTenureMonths,
		MaxTenureMonths: d.MaxTenureMonths,
		MinIncome:       d.MinIncome,
		MinCreditScore:  d.MinCreditScore,
		MinAge:          d.MinAge,
		MaxAge:          d.MaxAge,
		EmploymentTypes: d.EmploymentTypes,
		ProcessingFee:   d.ProcessingFee,
		Features:        d.Features,
	}
}

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source loanDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}
