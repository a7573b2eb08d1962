package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-marketplace-workers/internal/models"
)

func TestEstimateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		want      float64
		delta     float64
		wantErr   bool
	}{
		{name: "twelve percent over a year", principal: 120000, rate: 12, months: 12, want: 10661.85, delta: 0.01},
		{name: "zero rate repays evenly", principal: 120000, rate: 0, months: 12, want: 10000},
		{name: "single month", principal: 50000, rate: 12, months: 1, want: 50500, delta: 1e-6},
		{name: "zero tenure", principal: 120000, rate: 12, months: 0, wantErr: true},
		{name: "negative tenure", principal: 120000, rate: 12, months: -6, wantErr: true},
		{name: "negative principal", principal: -1, rate: 12, months: 12, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateEMI(tt.principal, tt.rate, tt.months)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			if tt.delta == 0 {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestProjectRecommendation(t *testing.T) {
	loan := sampleCatalog()[0] // HDFC, 10.5%, 4,000,000, 12-60 months

	rec, err := ProjectRecommendation("U001", loan)
	require.NoError(t, err)

	wantEMI, err := EstimateEMI(2400000, 10.5, 36)
	require.NoError(t, err)

	assert.Equal(t, "U001", rec.ProfileID)
	assert.Equal(t, "L001", rec.LoanID)
	assert.InDelta(t, 2400000, rec.RecommendedAmount, 1e-6)
	assert.Equal(t, 36, rec.RecommendedTenureMonths)
	assert.InDelta(t, wantEMI, rec.EstimatedEMI, 1e-6)
	assert.Equal(t, "Best rate of 10.5% from HDFC Bank", rec.RecommendationReason)
}

func TestProjectRecommendation_Edges(t *testing.T) {
	t.Run("odd tenure span floors", func(t *testing.T) {
		loan := models.LoanProduct{LoanID: "L9", BankName: "IDFC First", InterestRate: 11, MinAmount: 1000, MaxAmount: 100000, MinTenureMonths: 12, MaxTenureMonths: 25}
		rec, err := ProjectRecommendation("U003", loan)
		require.NoError(t, err)
		assert.Equal(t, 18, rec.RecommendedTenureMonths)
		assert.Equal(t, "Best rate of 11% from IDFC First", rec.RecommendationReason)
	})

	t.Run("zero rate product", func(t *testing.T) {
		loan := models.LoanProduct{LoanID: "L0", BankName: "Promo Bank", InterestRate: 0, MinAmount: 1000, MaxAmount: 200000, MinTenureMonths: 12, MaxTenureMonths: 12}
		rec, err := ProjectRecommendation("U003", loan)
		require.NoError(t, err)
		assert.InDelta(t, 10000, rec.EstimatedEMI, 1e-6)
	})

	t.Run("zero tenure is rejected", func(t *testing.T) {
		loan := models.LoanProduct{LoanID: "L8", BankName: "X", InterestRate: 9, MinAmount: 1000, MaxAmount: 100000}
		_, err := ProjectRecommendation("U003", loan)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestProjectRecommendations(t *testing.T) {
	user := borderlineUser()
	loans := append(sampleCatalog()[3:4], models.LoanProduct{LoanID: "BAD", MinAmount: 10, MaxAmount: 5})

	recs := ProjectRecommendations(user.ProfileID, user, loans)

	require.Len(t, recs, 1)
	assert.Equal(t, "L004", recs[0].LoanID)
	assert.Equal(t, "U002", recs[0].ProfileID)
	assert.Equal(t, 32, recs[0].EligibilityScore)
}
