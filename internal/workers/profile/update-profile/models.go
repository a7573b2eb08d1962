// internal/workers/profile/update-profile/models.go
package updateprofile

import "loan-marketplace-workers/internal/models"

// Input carries the profile id and the fields to change at the top level.
type Input struct {
	ProfileID string `json:"profileId"`
	models.ProfileUpdate
}

type Output struct {
	Profile       models.UserProfile `json:"profile"`
	ChangedFields []string           `json:"changedFields"`
}
