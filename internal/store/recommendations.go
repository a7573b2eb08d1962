// internal/store/recommendations.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"loan-marketplace-workers/internal/models"
)

// RecommendationRepository persists user_loan_reco rows keyed by (profile_id, loan_id).
type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// SaveResult counts rows written and rows already present.
type SaveResult struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

// Upsert inserts recs, leaving any existing (profile, loan) pair untouched.
// Amounts are stored in whole rupees.
func (r *RecommendationRepository) Upsert(ctx context.Context, recs []models.Recommendation) (SaveResult, error) {
	var result SaveResult
	if len(recs) == 0 {
		return result, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO user_loan_reco (profile_id, loan_id, eligibility_score, recommended_amount,
		                            recommended_tenure, estimated_emi, recommendation_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile_id, loan_id) DO NOTHING`)
	if err != nil {
		return result, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		res, err := stmt.ExecContext(ctx,
			rec.ProfileID, rec.LoanID, rec.EligibilityScore,
			wholeRupees(rec.RecommendedAmount), rec.RecommendedTenureMonths,
			wholeRupees(rec.EstimatedEMI), rec.RecommendationReason,
		)
		if err != nil {
			return SaveResult{}, fmt.Errorf("upsert recommendation %s/%s: %w", rec.ProfileID, rec.LoanID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			result.Saved++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

// ListByProfile returns stored recommendations with their loans, newest first.
func (r *RecommendationRepository) ListByProfile(ctx context.Context, profileID string) ([]models.RecommendationDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.reco_id, r.profile_id, r.loan_id, r.eligibility_score, r.recommended_amount,
		       r.recommended_tenure, r.estimated_emi, r.recommendation_reason, r.recommended_at,
		       l.bank_name, l.loan_type, l.interest_rate, l.min_amount, l.max_amount,
		       l.min_tenure_months, l.max_tenure_months, l.min_income, l.min_credit_score,
		       COALESCE(l.processing_fee, 0), COALESCE(l.features, '{}')
		FROM user_loan_reco r
		JOIN loans l ON l.loan_id = r.loan_id
		WHERE r.profile_id = $1
		ORDER BY r.recommended_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations for %s: %w", profileID, err)
	}
	defer rows.Close()

	out := make([]models.RecommendationDetail, 0)
	for rows.Next() {
		var d models.RecommendationDetail
		err := rows.Scan(
			&d.RecoID, &d.ProfileID, &d.LoanID, &d.EligibilityScore, &d.RecommendedAmount,
			&d.RecommendedTenureMonths, &d.EstimatedEMI, &d.RecommendationReason, &d.RecommendedAt,
			&d.Loan.BankName, &d.Loan.LoanType, &d.Loan.InterestRate, &d.Loan.MinAmount, &d.Loan.MaxAmount,
			&d.Loan.MinTenureMonths, &d.Loan.MaxTenureMonths, &d.Loan.MinIncome, &d.Loan.MinCreditScore,
			&d.Loan.ProcessingFee, pq.Array(&d.Loan.Features),
		)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		d.Loan.LoanID = d.LoanID
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return out, nil
}

// DeleteByProfile removes every recommendation for the profile.
func (r *RecommendationRepository) DeleteByProfile(ctx context.Context, profileID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_loan_reco WHERE profile_id = $1`, profileID)
	if err != nil {
		return 0, fmt.Errorf("clear recommendations for %s: %w", profileID, err)
	}
	return res.RowsAffected()
}

func wholeRupees(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}
