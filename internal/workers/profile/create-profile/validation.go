// internal/workers/profile/create-profile/validation.go
package createprofile

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"loan-marketplace-workers/internal/models"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Validate checks a signup. Error keys are the JSON field names.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.AuthID, validation.Required, validation.Length(1, 128)),
		validation.Field(&in.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&in.Age, validation.Required, validation.Min(18), validation.Max(100)),
		validation.Field(&in.City, validation.Length(0, 100)),
		validation.Field(&in.Email, is.EmailFormat),
		validation.Field(&in.Phone, validation.Match(phonePattern)),
		validation.Field(&in.MonthlyIncome, validation.Required, validation.Min(0.0)),
		validation.Field(&in.EmploymentType, validation.Required,
			validation.In(models.EmploymentSalaried, models.EmploymentSelfEmployed, models.EmploymentBusiness)),
		validation.Field(&in.YearsEmployed, validation.Min(0), validation.Max(60)),
		validation.Field(&in.CreditScore, validation.Required, validation.Min(300), validation.Max(900)),
		validation.Field(&in.ExistingEMI, validation.Min(0.0)),
	)
}
