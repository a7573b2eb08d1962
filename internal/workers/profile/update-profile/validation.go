// internal/workers/profile/update-profile/validation.go
package updateprofile

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"loan-marketplace-workers/internal/models"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Validate checks the profile id and only the fields present in the update.
func (in Input) Validate() error {
	u := &in.ProfileUpdate
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProfileID, validation.Required),
		validation.Field(&u.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&u.Age, validation.Min(18), validation.Max(100)),
		validation.Field(&u.City, validation.Length(0, 100)),
		validation.Field(&u.Email, is.EmailFormat),
		validation.Field(&u.Phone, validation.Match(phonePattern)),
		validation.Field(&u.MonthlyIncome, validation.Min(0.0)),
		validation.Field(&u.EmploymentType, validation.NilOrNotEmpty,
			validation.In(models.EmploymentSalaried, models.EmploymentSelfEmployed, models.EmploymentBusiness)),
		validation.Field(&u.YearsEmployed, validation.Min(0), validation.Max(60)),
		validation.Field(&u.CreditScore, validation.Min(300), validation.Max(900)),
		validation.Field(&u.ExistingEMI, validation.Min(0.0)),
	)
}

// changedFields lists the JSON names of the fields the update sets.
func changedFields(u models.ProfileUpdate) []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(u.Name != nil, "name")
	add(u.Age != nil, "age")
	add(u.City != nil, "city")
	add(u.Email != nil, "email")
	add(u.Phone != nil, "phone")
	add(u.MonthlyIncome != nil, "monthlyIncome")
	add(u.EmploymentType != nil, "employmentType")
	add(u.YearsEmployed != nil, "yearsEmployed")
	add(u.CreditScore != nil, "creditScore")
	add(u.ExistingEMI != nil, "existingEmi")
	return fields
}
