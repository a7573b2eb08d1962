// internal/workers/eligibility/get-recommendations/models.go
package getrecommendations

import "loan-marketplace-workers/internal/models"

type Input struct {
	ProfileID string `json:"profileId"`
}

type Output struct {
	ProfileID       string                        `json:"profileId"`
	Recommendations []models.RecommendationDetail `json:"recommendations"`
	Count           int                           `json:"count"`
}
