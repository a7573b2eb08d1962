// internal/workers/eligibility/save-recommendations/handler.go
package saverecommendations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/advisor"
	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/common/metrics"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "save-recommendations"
)

type Handler struct {
	config    *Config
	advisor   *advisor.Advisor
	recos     *store.RecommendationRepository
	publisher events.Publisher
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, publisher events.Publisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		advisor: advisor.New(
			store.NewProfiles(db, rdb, config.ProfileTTL),
			store.NewCatalog(db, rdb, config.CatalogTTL),
		),
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
	recs, recomputed, err := h.recommendations(ctx, input)
	if err != nil {
		return nil, err
	}

	result, err := h.recos.Upsert(ctx, recs)
	if err != nil {
		return nil, store.QueryError("upsert_recommendations", err)
	}
	metrics.RecommendationsSaved.WithLabelValues("saved").Add(float64(result.Saved))
	metrics.RecommendationsSaved.WithLabelValues("skipped").Add(float64(result.Skipped))

	if result.Saved > 0 {
		events.Emit(ctx, h.publisher, h.logger, events.New(events.RecommendationsUpdated, input.ProfileID, map[string]interface{}{
			"saved":   result.Saved,
			"skipped": result.Skipped,
		}))
	}

	h.logger.Info("recommendations saved", map[string]interface{}{
		"profileId":  input.ProfileID,
		"saved":      result.Saved,
		"skipped":    result.Skipped,
		"recomputed": recomputed,
	})

	return &Output{Saved: result.Saved, Skipped: result.Skipped, Recomputed: recomputed}, nil
}

// recommendations returns the supplied recommendations, stamped with the
// job's profile, or recomputes them when none were supplied.
func (h *Handler) recommendations(ctx context.Context, input *Input) ([]models.Recommendation, bool, error) {
	if len(input.Recommendations) == 0 {
		ev, err := h.advisor.Evaluate(ctx, input.ProfileID, "")
		if err != nil {
			return nil, false, err
		}
		return ev.Recommendations, true, nil
	}

	recs := make([]models.Recommendation, len(input.Recommendations))
	for i, rec := range input.Recommendations {
		if rec.ProfileID != "" && rec.ProfileID != input.ProfileID {
			return nil, false, errors.NewInvalidInputError(
				fmt.Sprintf("recommendation %d belongs to profile %s", i, rec.ProfileID), nil)
		}
		if rec.LoanID == "" {
			return nil, false, errors.NewInvalidInputError(fmt.Sprintf("recommendation %d has no loanId", i), nil)
		}
		rec.ProfileID = input.ProfileID
		recs[i] = rec
	}
	return recs, false, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
