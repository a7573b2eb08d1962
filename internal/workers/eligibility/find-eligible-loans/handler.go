// internal/workers/eligibility/find-eligible-loans/handler.go
package findeligibleloans

import (
	"context"
	"database/sql"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/advisor"
	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "find-eligible-loans"
)

type Handler struct {
	config  *Config
	advisor *advisor.Advisor
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		advisor: advisor.New(
			store.NewProfiles(db, rdb, config.ProfileTTL),
			store.NewCatalog(db, rdb, config.CatalogTTL),
		),
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
	if input.LoanType != "" && !models.IsValidLoanType(input.LoanType) {
		return nil, errors.NewInvalidInputError("unknown loanType: "+input.LoanType, nil)
	}

	ev, err := h.advisor.Evaluate(ctx, input.ProfileID, input.LoanType)
	if err != nil {
		return nil, err
	}
	result := ev.Result

	if len(result.SkippedLoans) > 0 {
		h.logger.Warn("malformed loan products skipped", map[string]interface{}{
			"loanIds": result.SkippedLoans,
		})
	}

	h.logger.Info("eligibility evaluated", map[string]interface{}{
		"profileId":         input.ProfileID,
		"eligible":          result.Eligible,
		"eligibilityScore":  result.EligibilityScore,
		"maxEligibleAmount": result.MaxEligibleAmount,
		"recommended":       len(result.RecommendedLoans),
	})

	return &Output{
		Eligible:          result.Eligible,
		MaxEligibleAmount: result.MaxEligibleAmount,
		EligibilityScore:  result.EligibilityScore,
		RecommendedLoans:  result.RecommendedLoans,
		Recommendations:   ev.Recommendations,
		Reasons:           result.Reasons,
		SkippedLoans:      result.SkippedLoans,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
