// internal/store/storetest/fixtures.go
package storetest

import (
	"time"

	"loan-marketplace-workers/internal/models"
)

var Created = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

// Profile is a salaried borrower eligible for most of Catalog.
func Profile() models.UserProfile {
	return models.UserProfile{
		ProfileID:      "U001",
		AuthID:         "auth-u001",
		Name:           "Asha Rao",
		Age:            32,
		City:           "Pune",
		Email:          "asha@example.com",
		Phone:          "+919800000001",
		MonthlyIncome:  120000,
		EmploymentType: models.EmploymentSalaried,
		YearsEmployed:  6,
		CreditScore:    780,
		ExistingEMI:    10000,
		CreatedAt:      Created,
		UpdatedAt:      Created,
	}
}

// Catalog holds three products; L002 needs a higher credit score than Profile has.
func Catalog() []models.LoanProduct {
	return []models.LoanProduct{
		{
			LoanID: "L001", BankName: "HDFC Bank", LoanType: models.LoanTypePersonal, InterestRate: 10.5,
			MinAmount: 50000, MaxAmount: 2500000, MinTenureMonths: 12, MaxTenureMonths: 60,
			MinIncome: 25000, MinCreditScore: 700, EmploymentTypes: []string{"Salaried"}, Features: []string{"Quick disbursal"},
		},
		{
			LoanID: "L002", BankName: "Kotak", LoanType: models.LoanTypePersonal, InterestRate: 9.9,
			MinAmount: 100000, MaxAmount: 3000000, MinTenureMonths: 12, MaxTenureMonths: 48,
			MinIncome: 40000, MinCreditScore: 800,
		},
		{
			LoanID: "L003", BankName: "SBI", LoanType: models.LoanTypeHome, InterestRate: 8.5,
			MinAmount: 500000, MaxAmount: 4000000, MinTenureMonths: 60, MaxTenureMonths: 240,
			MinIncome: 50000, MinCreditScore: 750, Features: []string{"Low rate", "Balance transfer"},
		},
	}
}
