// internal/workers/eligibility/save-recommendations/models.go
package saverecommendations

import "loan-marketplace-workers/internal/models"

// Input without recommendations recomputes them from the stored profile.
type Input struct {
	ProfileID       string                  `json:"profileId"`
	Recommendations []models.Recommendation `json:"recommendations,omitempty"`
}

type Output struct {
	Saved      int  `json:"saved"`
	Skipped    int  `json:"skipped"`
	Recomputed bool `json:"recomputed"`
}
