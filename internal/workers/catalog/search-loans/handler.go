// internal/workers/catalog/search-loans/handler.go
package searchloans

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
)

const (
	TaskType = "search-loans"
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		client: client,
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
	if input.LoanType != "" {
		input.LoanType = strings.ToLower(strings.TrimSpace(input.LoanType))
		if !models.IsValidLoanType(input.LoanType) {
			return nil, errors.NewInvalidInputError("unknown loanType: "+input.LoanType, nil)
		}
	}
	if input.Amount < 0 || input.MonthlyIncome < 0 || input.CreditScore < 0 || input.Pagination.From < 0 {
		return nil, errors.NewInvalidInputError("search filters must not be negative", nil)
	}

	size := input.Pagination.Size
	if size <= 0 {
		size = h.config.DefaultSize
	}
	if h.config.MaxSize > 0 && size > h.config.MaxSize {
		size = h.config.MaxSize
	}

	req, err := buildRequest(h.config.Index, input, input.Pagination.From, size)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(h.config.Index, err)
	}

	res, err := req.Do(ctx, h.client)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError(h.config.Index, err)
		}
		return nil, errors.NewSearchQueryFailedError(h.config.Index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e errorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		if res.StatusCode == http.StatusNotFound || e.Error.Type == "index_not_found_exception" {
			return nil, errors.NewIndexNotFoundError(h.config.Index)
		}
		return nil, errors.NewSearchQueryFailedError(h.config.Index,
			fmt.Errorf("%s: %s %s", res.Status(), e.Error.Type, e.Error.Reason))
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, errors.NewSearchQueryFailedError(h.config.Index, fmt.Errorf("decode response: %w", err))
	}

	loans := make([]models.LoanProduct, 0, len(body.Hits.Hits))
	for _, hit := range body.Hits.Hits {
		loans = append(loans, hit.Source.product())
	}

	h.logger.Debug("loan search finished", map[string]interface{}{
		"index":     h.config.Index,
		"totalHits": body.Hits.Total.Value,
		"returned":  len(loans),
		"took":      body.Took,
	})

	return &Output{Loans: loans, TotalHits: body.Hits.Total.Value, Took: body.Took}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
