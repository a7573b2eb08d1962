// internal/workers/catalog/loans-by-type/handler.go
package loansbytype

import (
	"context"
	"database/sql"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "loans-by-type"
)

type Handler struct {
	config  *Config
	catalog *store.Catalog
	errors  *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: store.NewCatalog(db, rdb, config.CatalogTTL),
		errors:  errors.NewErrorHandler(log),
		logger:  log,
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
	loanType := strings.ToLower(strings.TrimSpace(input.LoanType))
	if !models.IsValidLoanType(loanType) {
		return nil, errors.NewInvalidInputError("unknown loanType: "+input.LoanType, nil).
			WithMetadata("allowed", models.LoanTypes)
	}

	loans, err := h.catalog.Loans(ctx, loanType)
	if err != nil {
		return nil, store.QueryError("loans_by_type", err)
	}
	return &Output{LoanType: loanType, Loans: loans, Count: len(loans)}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
