// internal/workers/application/apply-loan/handler.go
package applyloan

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "apply-loan"
)

type Handler struct {
	config       *Config
	profiles     *store.Profiles
	loans        *store.CatalogRepository
	applications *store.ApplicationRepository
	publisher    events.Publisher
	newID        func() string
	errors       *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, publisher events.Publisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		profiles:     store.NewProfiles(db, rdb, config.ProfileTTL),
		loans:        store.NewCatalogRepository(db),
		applications: store.NewApplicationRepository(db),
		publisher:    publisher,
		newID:        func() string { return uuid.New().String() },
		errors:       errors.NewErrorHandler(log),
		logger:       log,
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
	if _, err := h.profiles.Get(ctx, input.ProfileID); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NewProfileNotFoundError(input.ProfileID)
		}
		return nil, store.QueryError("get_profile", err)
	}

	loan, err := h.loans.GetLoan(ctx, input.LoanID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NewLoanNotFoundError(input.LoanID)
		}
		return nil, store.QueryError("get_loan", err)
	}

	app, err := h.applications.Apply(ctx, models.Application{
		ApplicationID: h.newID(),
		ProfileID:     input.ProfileID,
		LoanID:        input.LoanID,
		Status:        models.ApplicationStatusPending,
	})
	if stderrors.Is(err, store.ErrDuplicate) {
		return nil, errors.NewDuplicateApplicationError(input.ProfileID, input.LoanID)
	}
	if err != nil {
		return nil, store.QueryError("apply_loan", err)
	}

	ev := events.New(events.AppliedLoansUpdated, app.ProfileID, map[string]interface{}{
		"applicationId": app.ApplicationID,
		"status":        app.Status,
	})
	ev.LoanID = app.LoanID
	events.Emit(ctx, h.publisher, h.logger, ev)

	h.logger.Info("loan application recorded", map[string]interface{}{
		"applicationId": app.ApplicationID,
		"profileId":     app.ProfileID,
		"loanId":        app.LoanID,
	})

	return &Output{
		ApplicationID: app.ApplicationID,
		ProfileID:     app.ProfileID,
		LoanID:        app.LoanID,
		BankName:      loan.BankName,
		LoanType:      loan.LoanType,
		Status:        app.Status,
		AppliedAt:     app.AppliedAt,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
