package eligibility

import (
	"math"

	"loan-marketplace-workers/internal/models"
)

// MaxScore is the sum of every band's top value.
const MaxScore = 100

// band awards points when a value reaches threshold. Bands are checked in order.
type band struct {
	threshold float64
	points    int
}

var (
	creditBands = []band{{750, 40}, {700, 35}, {650, 25}, {600, 15}}
	incomeBands = []band{{100000, 30}, {75000, 25}, {50000, 20}, {30000, 15}}
	tenureBands = []band{{5, 20}, {3, 15}, {2, 10}}
)

const (
	creditFloorPoints = 5
	incomeFloorPoints = 10
	tenureFloorPoints = 5
)

func atLeast(value float64, bands []band, floor int) int {
	for _, b := range bands {
		if value >= b.threshold {
			return b.points
		}
	}
	return floor
}

// CreditPoints scores the credit score out of 40.
func CreditPoints(creditScore int) int {
	return atLeast(float64(creditScore), creditBands, creditFloorPoints)
}

// IncomePoints scores monthly income out of 30.
func IncomePoints(monthlyIncome float64) int {
	return atLeast(monthlyIncome, incomeBands, incomeFloorPoints)
}

// TenurePoints scores years of employment out of 20.
func TenurePoints(yearsEmployed int) int {
	return atLeast(float64(yearsEmployed), tenureBands, tenureFloorPoints)
}

// EMIBurdenPoints scores the existing-EMI-to-income ratio out of 10.
// Lower ratios score higher.
func EMIBurdenPoints(ratio float64) int {
	switch {
	case ratio <= 0.3:
		return 10
	case ratio <= 0.4:
		return 7
	case ratio <= 0.5:
		return 5
	default:
		return 2
	}
}

// EMIRatio is existing EMI over monthly income. Without income the ratio is
// +Inf, which lands in the worst burden band.
func EMIRatio(user models.UserProfile) float64 {
	if user.MonthlyIncome <= 0 {
		return math.Inf(1)
	}
	return user.ExistingEMI / user.MonthlyIncome
}

// ComputeEligibilityScore sums the credit, income, tenure and EMI-burden bands.
func ComputeEligibilityScore(user models.UserProfile) int {
	score := CreditPoints(user.CreditScore) +
		IncomePoints(user.MonthlyIncome) +
		TenurePoints(user.YearsEmployed) +
		EMIBurdenPoints(EMIRatio(user))

	return min(score, MaxScore)
}
