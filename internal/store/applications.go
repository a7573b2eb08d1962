// internal/store/applications.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"loan-marketplace-workers/internal/models"
)

// ApplicationRepository persists user_applications rows.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Apply records app and removes the matching recommendation in one transaction.
// A second application for the same (profile, loan) returns ErrDuplicate.
func (r *ApplicationRepository) Apply(ctx context.Context, app models.Application) (models.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Application{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_applications WHERE profile_id = $1 AND loan_id = $2)`,
		app.ProfileID, app.LoanID,
	).Scan(&exists)
	if err != nil {
		return models.Application{}, fmt.Errorf("check existing application: %w", err)
	}
	if exists {
		return models.Application{}, fmt.Errorf("application %s/%s: %w", app.ProfileID, app.LoanID, ErrDuplicate)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO user_applications (application_id, profile_id, loan_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING applied_at`,
		app.ApplicationID, app.ProfileID, app.LoanID, app.Status,
	).Scan(&app.AppliedAt)
	if isUniqueViolation(err) {
		return models.Application{}, fmt.Errorf("application %s/%s: %w", app.ProfileID, app.LoanID, ErrDuplicate)
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("insert application: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_loan_reco WHERE profile_id = $1 AND loan_id = $2`,
		app.ProfileID, app.LoanID,
	); err != nil {
		return models.Application{}, fmt.Errorf("remove recommendation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Application{}, fmt.Errorf("commit: %w", err)
	}
	return app, nil
}

// ListByProfile returns the profile's applications with their loans, newest first.
func (r *ApplicationRepository) ListByProfile(ctx context.Context, profileID string) ([]models.ApplicationDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.application_id, a.profile_id, a.loan_id, a.status, a.sanctioned_amount, a.applied_at,
		       l.bank_name, l.loan_type, l.interest_rate, l.min_amount, l.max_amount,
		       l.min_tenure_months, l.max_tenure_months
		FROM user_applications a
		JOIN loans l ON l.loan_id = a.loan_id
		WHERE a.profile_id = $1
		ORDER BY a.applied_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list applications for %s: %w", profileID, err)
	}
	defer rows.Close()

	out := make([]models.ApplicationDetail, 0)
	for rows.Next() {
		var d models.ApplicationDetail
		var sanctioned sql.NullFloat64
		err := rows.Scan(
			&d.ApplicationID, &d.ProfileID, &d.LoanID, &d.Status, &sanctioned, &d.AppliedAt,
			&d.Loan.BankName, &d.Loan.LoanType, &d.Loan.InterestRate, &d.Loan.MinAmount, &d.Loan.MaxAmount,
			&d.Loan.MinTenureMonths, &d.Loan.MaxTenureMonths,
		)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if sanctioned.Valid {
			amount := sanctioned.Float64
			d.SanctionedAmount = &amount
		}
		d.Loan.LoanID = d.LoanID
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

// SummarizeApplications counts applications by stage and totals sanctioned amounts.
func SummarizeApplications(apps []models.ApplicationDetail) models.ApplicationStats {
	stats := models.ApplicationStats{TotalApplications: len(apps)}
	total := decimal.Zero
	for _, a := range apps {
		switch a.Status {
		case models.ApplicationStatusPending, models.ApplicationStatusInProgress, models.ApplicationStatusProcessing:
			stats.InProgress++
		case models.ApplicationStatusApproved, models.ApplicationStatusSanctioned:
			stats.Approved++
		}
		if a.Status == models.ApplicationStatusSanctioned && a.SanctionedAmount != nil {
			total = total.Add(decimal.NewFromFloat(*a.SanctionedAmount))
		}
	}
	stats.TotalSanctioned = total.InexactFloat64()
	return stats
}
