// internal/store/catalog.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"loan-marketplace-workers/internal/models"
)

const loanColumns = `loan_id, bank_name, loan_type, interest_rate, min_amount, max_amount,
		min_tenure_months, max_tenure_months, min_income, min_credit_score,
		COALESCE(min_age, 0), COALESCE(max_age, 0), COALESCE(employment_types, '{}'),
		COALESCE(processing_fee, 0), COALESCE(features, '{}')`

// CatalogRepository reads the loans table.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListLoans returns the whole catalog ordered by loan_id.
func (r *CatalogRepository) ListLoans(ctx context.Context) ([]models.LoanProduct, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY loan_id`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return scanLoans(rows)
}

// LoansByType returns products of one type, cheapest rate first.
func (r *CatalogRepository) LoansByType(ctx context.Context, loanType string) ([]models.LoanProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE loan_type = $1 ORDER BY interest_rate ASC, loan_id`, loanType)
	if err != nil {
		return nil, fmt.Errorf("loans by type %s: %w", loanType, err)
	}
	return scanLoans(rows)
}

// GetLoan returns one product or ErrNotFound.
func (r *CatalogRepository) GetLoan(ctx context.Context, loanID string) (models.LoanProduct, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_id = $1`, loanID)

	loan, err := scanLoan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LoanProduct{}, fmt.Errorf("loan %s: %w", loanID, ErrNotFound)
	}
	if err != nil {
		return models.LoanProduct{}, fmt.Errorf("get loan %s: %w", loanID, err)
	}
	return loan, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLoan(s scanner) (models.LoanProduct, error) {
	var l models.LoanProduct
	err := s.Scan(
		&l.LoanID, &l.BankName, &l.LoanType, &l.InterestRate, &l.MinAmount, &l.MaxAmount,
		&l.MinTenureMonths, &l.MaxTenureMonths, &l.MinIncome, &l.MinCreditScore,
		&l.MinAge, &l.MaxAge, pq.Array(&l.EmploymentTypes),
		&l.ProcessingFee, pq.Array(&l.Features),
	)
	return l, err
}

func scanLoans(rows *sql.Rows) ([]models.LoanProduct, error) {
	defer rows.Close()

	loans := make([]models.LoanProduct, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}
