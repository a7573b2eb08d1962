// internal/workers/profile/get-profile/models.go
package getprofile

import "loan-marketplace-workers/internal/models"

// Input selects a profile by profileId, or by authId when profileId is empty.
type Input struct {
	ProfileID string `json:"profileId,omitempty"`
	AuthID    string `json:"authId,omitempty"`
}

type Output struct {
	Profile models.UserProfile `json:"profile"`
}
