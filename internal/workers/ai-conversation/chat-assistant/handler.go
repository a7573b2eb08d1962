// internal/workers/ai-conversation/chat-assistant/handler.go
package chatassistant

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/advisor"
	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	apihttp "loan-marketplace-workers/internal/common/http"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "chat-assistant"
)

type Handler struct {
	config    *Config
	advisor   *advisor.Advisor
	recos     *store.RecommendationRepository
	api       *apihttp.Client
	publisher events.Publisher
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, publisher events.Publisher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	var opts []apihttp.Option
	if config.APIKey != "" {
		opts = append(opts, apihttp.WithHeader("Authorization", "Bearer "+config.APIKey))
	}

	return &Handler{
		config: config,
		advisor: advisor.New(
			store.NewProfiles(db, rdb, config.ProfileTTL),
			store.NewCatalog(db, rdb, config.CatalogTTL),
		),
		recos:     store.NewRecommendationRepository(db),
		api:       apihttp.NewClient(config.MaxRetries, opts...),
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
	if strings.TrimSpace(input.Message) == "" {
		return nil, errors.NewInvalidInputError("message is required", nil)
	}

	ev, err := h.advisor.Evaluate(ctx, input.ProfileID, "")
	if err != nil {
		return nil, err
	}

	reply, err := h.generate(ctx, ev, input)
	if err != nil {
		return nil, err
	}

	res, err := h.recos.Upsert(ctx, ev.Recommendations)
	if err != nil {
		return nil, store.QueryError("upsert_recommendations", err)
	}
	saved := res.Saved

	events.Emit(ctx, h.publisher, h.logger, events.New(events.AIRecommendationReceived, input.ProfileID, map[string]interface{}{
		"eligibilityScore": ev.Result.EligibilityScore,
		"recommendations":  len(ev.Recommendations),
		"saved":            saved,
	}))

	h.logger.Info("assistant replied", map[string]interface{}{
		"profileId":       input.ProfileID,
		"recommendations": len(ev.Recommendations),
		"saved":           saved,
	})

	recs := ev.Recommendations
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return &Output{
		Reply:            reply,
		Recommendations:  recs,
		EligibilityScore: ev.Result.EligibilityScore,
		Saved:            saved,
	}, nil
}

func (h *Handler) generate(ctx context.Context, ev *advisor.Evaluation, input *Input) (string, error) {
	req := generateRequest{
		Prompt: buildPrompt(ev, input, h.config.HistoryLimit),
		Context: map[string]interface{}{
			"profileId":        input.ProfileID,
			"eligible":         ev.Result.Eligible,
			"eligibilityScore": ev.Result.EligibilityScore,
			"recommendations":  ev.Recommendations,
		},
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
	}

	var resp generateResponse
	err := h.api.PostJSON(ctx, strings.TrimRight(h.config.GenAIBaseURL, "/")+"/api/ai/generate", req, &resp)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.NewLLMTimeoutError(err)
		}
		return "", errors.NewLLMSynthesisFailedError(err)
	}

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		h.logger.Warn("assistant returned an empty reply", map[string]interface{}{"profileId": input.ProfileID})
		reply = fallbackReply
	}
	return reply, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
