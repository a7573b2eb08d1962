// internal/models/user.go
package models

import "time"

// Employment types as stored in users.employment_type.
const (
	EmploymentSalaried     = "Salaried"
	EmploymentSelfEmployed = "Self-Employed"
	EmploymentBusiness     = "Business"
)

// UserProfile is a borrower's financial profile.
type UserProfile struct {
	ProfileID      string    `json:"profileId" db:"profile_id"`
	AuthID         string    `json:"authId,omitempty" db:"auth_id"`
	Name           string    `json:"name" db:"name"`
	Age            int       `json:"age" db:"age"`
	City           string    `json:"city,omitempty" db:"city"`
	Email          string    `json:"email,omitempty" db:"email"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	MonthlyIncome  float64   `json:"monthlyIncome" db:"monthly_income"`
	EmploymentType string    `json:"employmentType" db:"employment_type"`
	YearsEmployed  int       `json:"yearsEmployed" db:"years_employed"`
	CreditScore    int       `json:"creditScore" db:"credit_score"`
	ExistingEMI    float64   `json:"existingEmi" db:"existing_emi"`
	CreatedAt      time.Time `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// ProfileUpdate carries a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Age            *int     `json:"age,omitempty"`
	City           *string  `json:"city,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	MonthlyIncome  *float64 `json:"monthlyIncome,omitempty"`
	EmploymentType *string  `json:"employmentType,omitempty"`
	YearsEmployed  *int     `json:"yearsEmployed,omitempty"`
	CreditScore    *int     `json:"creditScore,omitempty"`
	ExistingEMI    *float64 `json:"existingEmi,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.City == nil && u.Email == nil && u.Phone == nil &&
		u.MonthlyIncome == nil && u.EmploymentType == nil && u.YearsEmployed == nil &&
		u.CreditScore == nil && u.ExistingEMI == nil
}

// Apply returns a copy of p with the update applied.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.MonthlyIncome != nil {
		p.MonthlyIncome = *u.MonthlyIncome
	}
	if u.EmploymentType != nil {
		p.EmploymentType = *u.EmploymentType
	}
	if u.YearsEmployed != nil {
		p.YearsEmployed = *u.YearsEmployed
	}
	if u.CreditScore != nil {
		p.CreditScore = *u.CreditScore
	}
	if u.ExistingEMI != nil {
		p.ExistingEMI = *u.ExistingEMI
	}
	return p
}
