// internal/workers/catalog/loans-by-type/models.go
package loansbytype

import "loan-marketplace-workers/internal/models"

type Input struct {
	LoanType string `json:"loanType"`
}

type Output struct {
	LoanType string               `json:"loanType"`
	Loans    []models.LoanProduct `json:"loans"`
	Count    int                  `json:"count"`
}
