// internal/workers/eligibility/clear-recommendations/models.go
package clearrecommendations

type Input struct {
	ProfileID string `json:"profileId"`
}

type Output struct {
	Deleted int64 `json:"deleted"`
}
