// internal/store/storetest/storetest.go

// Package storetest builds sqlmock rows shaped like the store queries.
package storetest

import (
	"strings"

	"github.com/DATA-DOG/go-sqlmock"

	"loan-marketplace-workers/internal/models"
)

var LoanColumns = []string{
	"loan_id", "bank_name", "loan_type", "interest_rate", "min_amount", "max_amount",
	"min_tenure_months", "max_tenure_months", "min_income", "min_credit_score",
	"min_age", "max_age", "employment_types", "processing_fee", "features",
}

var ProfileColumns = []string{
	"profile_id", "auth_id", "name", "age", "city", "email", "phone", "monthly_income",
	"employment_type", "years_employed", "credit_score", "existing_emi", "created_at", "updated_at",
}

var RecommendationColumns = []string{
	"reco_id", "profile_id", "loan_id", "eligibility_score", "recommended_amount",
	"recommended_tenure", "estimated_emi", "recommendation_reason", "recommended_at",
	"bank_name", "loan_type", "interest_rate", "min_amount", "max_amount",
	"min_tenure_months", "max_tenure_months", "min_income", "min_credit_score",
	"processing_fee", "features",
}

var ApplicationColumns = []string{
	"application_id", "profile_id", "loan_id", "status", "sanctioned_amount", "applied_at",
	"bank_name", "loan_type", "interest_rate", "min_amount", "max_amount",
	"min_tenure_months", "max_tenure_months",
}

// LoanRows returns rows for the catalog queries.
func LoanRows(loans ...models.LoanProduct) *sqlmock.Rows {
	rows := sqlmock.NewRows(LoanColumns)
	for _, l := range loans {
		rows.AddRow(
			l.LoanID, l.BankName, l.LoanType, l.InterestRate, l.MinAmount, l.MaxAmount,
			l.MinTenureMonths, l.MaxTenureMonths, l.MinIncome, l.MinCreditScore,
			l.MinAge, l.MaxAge, pgArray(l.EmploymentTypes), l.ProcessingFee, pgArray(l.Features),
		)
	}
	return rows
}

// ProfileRows returns rows for the profile queries.
func ProfileRows(profiles ...models.UserProfile) *sqlmock.Rows {
	rows := sqlmock.NewRows(ProfileColumns)
	for _, p := range profiles {
		rows.AddRow(
			p.ProfileID, p.AuthID, p.Name, p.Age, p.City, p.Email, p.Phone, p.MonthlyIncome,
			p.EmploymentType, p.YearsEmployed, p.CreditScore, p.ExistingEMI, p.CreatedAt, p.UpdatedAt,
		)
	}
	return rows
}

func pgArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

// RecommendationRows returns rows for the recommendation listing join.
func RecommendationRows(details ...models.RecommendationDetail) *sqlmock.Rows {
	rows := sqlmock.NewRows(RecommendationColumns)
	for _, d := range details {
		l := d.Loan
		rows.AddRow(
			d.RecoID, d.ProfileID, d.LoanID, d.EligibilityScore, d.RecommendedAmount,
			d.RecommendedTenureMonths, d.EstimatedEMI, d.RecommendationReason, d.RecommendedAt,
			l.BankName, l.LoanType, l.InterestRate, l.MinAmount, l.MaxAmount,
			l.MinTenureMonths, l.MaxTenureMonths, l.MinIncome, l.MinCreditScore,
			l.ProcessingFee, pgArray(l.Features),
		)
	}
	return rows
}

// ApplicationRows returns rows for the application listing join.
func ApplicationRows(apps ...models.ApplicationDetail) *sqlmock.Rows {
	rows := sqlmock.NewRows(ApplicationColumns)
	for _, a := range apps {
		var sanctioned interface{}
		if a.SanctionedAmount != nil {
			sanctioned = *a.SanctionedAmount
		}
		l := a.Loan
		rows.AddRow(
			a.ApplicationID, a.ProfileID, a.LoanID, a.Status, sanctioned, a.AppliedAt,
			l.BankName, l.LoanType, l.InterestRate, l.MinAmount, l.MaxAmount,
			l.MinTenureMonths, l.MaxTenureMonths,
		)
	}
	return rows
}
