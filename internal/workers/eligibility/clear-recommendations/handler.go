// internal/workers/eligibility/clear-recommendations/handler.go
package clearrecommendations

import (
	"context"
	"database/sql"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "clear-recommendations"
)

type Handler struct {
	config    *Config
	recos     *store.RecommendationRepository
	publisher events.Publisher
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, publisher events.Publisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		recos:     store.NewRecommendationRepository(db),
		publisher: publisher,
		errors:    errors.NewErrorHandler(log),
		logger:    log,
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
	deleted, err := h.recos.DeleteByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, store.QueryError("delete_recommendations", err)
	}

	// observers reset their view even when nothing was stored
	events.Emit(ctx, h.publisher, h.logger, events.New(events.RecommendationsCleared, input.ProfileID, map[string]interface{}{
		"deleted": deleted,
	}))

	h.logger.Info("recommendations cleared", map[string]interface{}{
		"profileId": input.ProfileID,
		"deleted":   deleted,
	})
	return &Output{Deleted: deleted}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
