// internal/workers/application/list-applied-loans/models.go
package listappliedloans

import "loan-marketplace-workers/internal/models"

type Input struct {
	ProfileID string `json:"profileId"`
}

type Output struct {
	ProfileID    string                     `json:"profileId"`
	Applications []models.ApplicationDetail `json:"applications"`
	Stats        models.ApplicationStats    `json:"stats"`
}
