// internal/workers/profile/create-profile/models.go
package createprofile

import "loan-marketplace-workers/internal/models"

type Input struct {
	AuthID         string  `json:"authId"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	City           string  `json:"city,omitempty"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	MonthlyIncome  float64 `json:"monthlyIncome"`
	EmploymentType string  `json:"employmentType"`
	YearsEmployed  int     `json:"yearsEmployed"`
	CreditScore    int     `json:"creditScore"`
	ExistingEMI    float64 `json:"existingEmi"`
}

func (in Input) profile() models.UserProfile {
	return models.UserProfile{
		AuthID:         in.AuthID,
		Name:           in.Name,
		Age:            in.Age,
		City:           in.City,
		Email:          in.Email,
		Phone:          in.Phone,
		MonthlyIncome:  in.MonthlyIncome,
		EmploymentType: in.EmploymentType,
		YearsEmployed:  in.YearsEmployed,
		CreditScore:    in.CreditScore,
		ExistingEMI:    in.ExistingEMI,
	}
}

type Output struct {
	Profile models.UserProfile `json:"profile"`
	Created bool               `json:"created"`
}
