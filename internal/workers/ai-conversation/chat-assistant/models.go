// internal/workers/ai-conversation/chat-assistant/models.go
package chatassistant

import "loan-marketplace-workers/internal/models"

type Input struct {
	ProfileID string        `json:"profileId"`
	Message   string        `json:"message"`
	History   []ChatMessage `json:"history,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Output struct {
	Reply            string                  `json:"reply"`
	Recommendations  []models.Recommendation `json:"recommendations"`
	EligibilityScore int                     `json:"eligibilityScore"`
	Saved            int                     `json:"saved"`
}

type generateRequest struct {
	Prompt      string                 `json:"prompt"`
	Context     map[string]interface{} `json:"context"`
	MaxTokens   int                    `json:"max_tokens,omitempty"`
	Temperature float64                `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}
