// internal/workers/eligibility/get-recommendations/handler.go
package getrecommendations

import (
	"context"
	"database/sql"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "get-recommendations"
)

type Handler struct {
	config *Config
	recos  *store.RecommendationRepository
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		recos:  store.NewRecommendationRepository(db),
		errors: errors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(ctx context.Context, client worker.JobClient, job entities.Job) error {
	return camunda.Process(ctx, camunda.Job{
		Client:  client,
		Job:     job,
		Timeout: h.config.Timeout,
		Errors:  h.errors,
		Logger:  h.logger,
	}, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	recs, err := h.recos.ListByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, store.QueryError("list_recommendations", err)
	}

	h.logger.Debug("recommendations loaded", map[string]interface{}{
		"profileId": input.ProfileID,
		"count":     len(recs),
	})

	return &Output{
		ProfileID:       input.ProfileID,
		Recommendations: recs,
		Count:           len(recs),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
