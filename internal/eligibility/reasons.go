package eligibility

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"loan-marketplace-workers/internal/models"
)

// NoMatchReason is given when the user is ineligible but clears every named threshold.
const NoMatchReason = "No loan products match the current profile"

// GenerateReasons explains the result in display order: credit, income,
// tenure, employment type, then EMI burden.
func GenerateReasons(user models.UserProfile, isEligible bool) []string {
	if !isEligible {
		return shortfallReasons(user)
	}

	reasons := make([]string, 0, 5)
	switch {
	case user.CreditScore >= 750:
		reasons = append(reasons, fmt.Sprintf("Excellent credit score of %d", user.CreditScore))
	case user.CreditScore >= 700:
		reasons = append(reasons, fmt.Sprintf("Good credit score of %d", user.CreditScore))
	}
	if user.MonthlyIncome >= 75000 {
		reasons = append(reasons, "Strong monthly income of "+FormatRupees(user.MonthlyIncome))
	}
	if user.YearsEmployed >= 3 {
		reasons = append(reasons, fmt.Sprintf("%d years of employment stability", user.YearsEmployed))
	}
	if isSalaried(user.EmploymentType) {
		reasons = append(reasons, "Salaried employment provides stability")
	}
	if EMIRatio(user) <= 0.3 {
		reasons = append(reasons, "Low existing EMI burden")
	}
	return reasons
}

func shortfallReasons(user models.UserProfile) []string {
	reasons := make([]string, 0, 3)
	if user.CreditScore < 600 {
		reasons = append(reasons, fmt.Sprintf("Credit score of %d is below minimum requirement", user.CreditScore))
	}
	if user.MonthlyIncome < 25000 {
		reasons = append(reasons, "Monthly income is below minimum threshold")
	}
	if EMIRatio(user) > 0.5 {
		reasons = append(reasons, "High existing EMI burden reduces eligibility")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, NoMatchReason)
	}
	return reasons
}

func isSalaried(employmentType string) bool {
	return strings.EqualFold(strings.TrimSpace(employmentType), models.EmploymentSalaried)
}

// FormatRupees renders a whole-rupee amount with thousands grouping, e.g. ₹120,000.
func FormatRupees(amount float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("₹%d", int64(math.Round(amount)))
}
