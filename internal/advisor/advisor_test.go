package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

type profileStub map[string]models.UserProfile

func (s profileStub) Get(_ context.Context, id string) (models.UserProfile, error) {
	p, ok := s[id]
	if !ok {
		return models.UserProfile{}, store.ErrNotFound
	}
	return p, nil
}

type catalogStub struct {
	loans []models.LoanProduct
	err   error
	asked string
}

func (c *catalogStub) Loans(_ context.Context, loanType string) ([]models.LoanProduct, error) {
	c.asked = loanType
	return c.loans, c.err
}

func profiles() profileStub {
	return profileStub{
		"U001": {ProfileID: "U001", MonthlyIncome: 120000, CreditScore: 780, YearsEmployed: 6, ExistingEMI: 10000, EmploymentType: models.EmploymentSalaried},
		"U009": {ProfileID: "U009", MonthlyIncome: -5},
	}
}

func catalog() []models.LoanProduct {
	return []models.LoanProduct{
		{LoanID: "L001", BankName: "HDFC Bank", LoanType: "personal", InterestRate: 10.5, MinAmount: 50000, MaxAmount: 4000000,
			MinTenureMonths: 12, MaxTenureMonths: 60, MinIncome: 25000, MinCreditScore: 700},
		{LoanID: "L003", BankName: "SBI", LoanType: "home", InterestRate: 8.5, MinAmount: 500000, MaxAmount: 4000000,
			MinTenureMonths: 12, MaxTenureMonths: 60, MinIncome: 50000, MinCreditScore: 750},
		{LoanID: "BAD", BankName: "Broken", InterestRate: 9, MinAmount: 10, MaxAmount: 5, MinTenureMonths: 12, MaxTenureMonths: 24},
	}
}

func TestAdvisor_Evaluate(t *testing.T) {
	cat := &catalogStub{loans: catalog()}
	ev, err := New(profiles(), cat).Evaluate(context.Background(), "U001", "")
	require.NoError(t, err)

	assert.True(t, ev.Result.Eligible)
	assert.Equal(t, []string{"BAD"}, ev.Result.SkippedLoans)
	require.Len(t, ev.Recommendations, 2)
	assert.Equal(t, "L003", ev.Recommendations[0].LoanID, "best rate first")
	assert.Equal(t, ev.Result.EligibilityScore, ev.Recommendations[0].EligibilityScore)
	assert.Equal(t, "U001", ev.Recommendations[0].ProfileID)
}

func TestAdvisor_Evaluate_PassesLoanType(t *testing.T) {
	cat := &catalogStub{loans: catalog()[:1]}
	_, err := New(profiles(), cat).Evaluate(context.Background(), "U001", "personal")
	require.NoError(t, err)
	assert.Equal(t, "personal", cat.asked)
}

func TestAdvisor_Evaluate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		profileID string
		catalog   *catalogStub
		wantCode  apperrors.ErrorCode
	}{
		{name: "unknown profile", profileID: "U404", catalog: &catalogStub{}, wantCode: apperrors.ErrCodeProfileNotFound},
		{name: "invalid profile", profileID: "U009", catalog: &catalogStub{loans: catalog()}, wantCode: apperrors.ErrCodeProfileValidationFailed},
		{name: "catalog query failed", profileID: "U001", catalog: &catalogStub{err: errors.New("connection reset")}, wantCode: apperrors.ErrCodeQueryExecutionFailed},
		{name: "catalog timeout", profileID: "U001", catalog: &catalogStub{err: context.DeadlineExceeded}, wantCode: apperrors.ErrCodeQueryTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(profiles(), tt.catalog).Evaluate(context.Background(), tt.profileID, "")
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}

func TestScore_NoMatches(t *testing.T) {
	ev, err := Score(models.UserProfile{ProfileID: "U002", MonthlyIncome: 10000, CreditScore: 500}, catalog())
	require.NoError(t, err)
	assert.False(t, ev.Result.Eligible)
	assert.Empty(t, ev.Recommendations)
	assert.NotEmpty(t, ev.Result.Reasons)
}
