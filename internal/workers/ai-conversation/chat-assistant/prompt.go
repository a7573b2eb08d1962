// internal/workers/ai-conversation/chat-assistant/prompt.go
package chatassistant

import (
	"fmt"
	"strings"

	"loan-marketplace-workers/internal/advisor"
	"loan-marketplace-workers/internal/eligibility"
	"loan-marketplace-workers/internal/models"
)

const fallbackReply = "I could not put together an answer right now. Your eligible loans are listed below."

func buildPrompt(ev *advisor.Evaluation, input *Input, historyLimit int) string {
	p := ev.Profile
	r := ev.Result

	var b strings.Builder
	b.WriteString("You are a loan advisor for an Indian loan marketplace. Answer using ONLY the data below.\n")

	b.WriteString("\nApplicant:\n")
	fmt.Fprintf(&b, "- Name: %s, age %d\n", p.Name, p.Age)
	fmt.Fprintf(&b, "- Monthly income: %s\n", eligibility.FormatRupees(p.MonthlyIncome))
	fmt.Fprintf(&b, "- Employment: %s, %d years\n", p.EmploymentType, p.YearsEmployed)
	fmt.Fprintf(&b, "- Credit score: %d\n", p.CreditScore)
	fmt.Fprintf(&b, "- Existing EMI: %s\n", eligibility.FormatRupees(p.ExistingEMI))

	b.WriteString("\nEligibility:\n")
	fmt.Fprintf(&b, "- Eligible: %t, score %d/100\n", r.Eligible, r.EligibilityScore)
	if r.Eligible {
		fmt.Fprintf(&b, "- Maximum eligible amount: %s\n", eligibility.FormatRupees(r.MaxEligibleAmount))
	}
	for _, reason := range r.Reasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}

	if len(ev.Recommendations) > 0 {
		loans := make(map[string]models.LoanProduct, len(r.RecommendedLoans))
		for _, l := range r.RecommendedLoans {
			loans[l.LoanID] = l
		}
		b.WriteString("\nTop loans:\n")
		for _, rec := range ev.Recommendations {
			loan := loans[rec.LoanID]
			fmt.Fprintf(&b, "- %s %s loan at %.2f%%: %s over %d months, EMI about %s\n",
				loan.BankName, loan.LoanType, loan.InterestRate,
				eligibility.FormatRupees(rec.RecommendedAmount), rec.RecommendedTenureMonths,
				eligibility.FormatRupees(rec.EstimatedEMI))
		}
	}

	history := input.History
	if historyLimit > 0 && len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}

	fmt.Fprintf(&b, "\nUser: %s\n", strings.TrimSpace(input.Message))
	b.WriteString("\nKeep the answer short. Never promise approval. If the data does not cover the question, say so.\n")
	b.WriteString("\nAnswer:")
	return b.String()
}
