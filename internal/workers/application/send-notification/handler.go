// internal/workers/application/send-notification/handler.go
package sendnotification

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/eligibility"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

const (
	TaskType = "send-notification"
)

// EmailSender and SMSSender are satisfied by the aws package's Mailer and Texter.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config   *Config
	profiles *store.Profiles
	loans    *store.CatalogRepository
	email    EmailSender
	sms      SMSSender
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

// NewHandler wires the senders. A nil sender disables its channel.
func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: store.NewProfiles(db, rdb, config.ProfileTTL),
		loans:    store.NewCatalogRepository(db),
		email:    email,
		sms:      sms,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
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
	tmpl, ok := h.config.Templates[input.NotificationType]
	if !ok {
		return nil, errors.NewTemplateNotFoundError(input.NotificationType)
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		Status:         models.NotificationStatusDisabled,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	profile, err := h.profiles.Get(ctx, input.ProfileID)
	if stderrors.Is(err, store.ErrNotFound) {
		h.logger.Warn("recipient not found", map[string]interface{}{"profileId": input.ProfileID})
		return out, nil
	}
	if err != nil {
		return nil, store.QueryError("get_contact", err)
	}
	contact := models.Contact{ProfileID: profile.ProfileID, Name: profile.Name, Email: profile.Email, Phone: profile.Phone}

	data := h.templateData(ctx, input, contact)
	subject := renderTemplate(tmpl.Subject, data)
	body := renderTemplate(tmpl.Body, data)

	if h.config.EmailEnabled && h.email != nil && contact.Email != "" {
		if _, err := h.email.SendEmail(ctx, contact.Email, subject, body); err != nil {
			h.logger.WithError(errors.NewNotificationSendFailedError(ChannelEmail, err)).
				Error("email send failed", map[string]interface{}{"profileId": contact.ProfileID})
			out.Status = models.NotificationStatusFailed
			return out, nil
		}
		out.Channels = append(out.Channels, ChannelEmail)
	}

	if h.config.SMSEnabled && h.sms != nil && contact.Phone != "" && meetsThreshold(input.Priority, h.config.SMSThreshold) {
		if _, err := h.sms.SendSMS(ctx, contact.Phone, body); err != nil {
			h.logger.WithError(errors.NewNotificationSendFailedError(ChannelSMS, err)).
				Error("SMS send failed", map[string]interface{}{"profileId": contact.ProfileID})
			out.Status = models.NotificationStatusFailed
			return out, nil
		}
		out.Channels = append(out.Channels, ChannelSMS)
	}

	if len(out.Channels) > 0 {
		out.Status = models.NotificationStatusSent
	}

	h.logger.Info("notification processed", map[string]interface{}{
		"notificationId":   out.NotificationID,
		"notificationType": input.NotificationType,
		"status":           out.Status,
		"channels":         out.Channels,
	})
	return out, nil
}

// templateData collects the placeholder values. Metadata overrides the
// derived values; loan details are added when the loan can be found.
func (h *Handler) templateData(ctx context.Context, input *Input, contact models.Contact) map[string]interface{} {
	data := map[string]interface{}{
		"name":             contact.Name,
		"profileId":        contact.ProfileID,
		"notificationType": input.NotificationType,
		"applicationId":    input.ApplicationID,
		"loanId":           input.LoanID,
		"priority":         input.Priority,
	}

	if input.LoanID != "" {
		loan, err := h.loans.GetLoan(ctx, input.LoanID)
		if err == nil {
			data["bankName"] = loan.BankName
			data["loanType"] = loan.LoanType
			data["interestRate"] = loan.InterestRate
			data["maxAmount"] = eligibility.FormatRupees(loan.MaxAmount)
		} else {
			h.logger.Debug("loan details unavailable for template", map[string]interface{}{
				"loanId": input.LoanID,
				"error":  err,
			})
		}
	}

	for k, v := range input.Metadata {
		data[k] = v
	}
	return data
}

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// renderTemplate substitutes {{key}} placeholders. Unknown keys render empty.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		v, ok := data[key]
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
}

var priorityRank = map[string]int{
	PriorityLow:    0,
	PriorityNormal: 1,
	PriorityHigh:   2,
}

func meetsThreshold(priority, threshold string) bool {
	p, ok := priorityRank[strings.ToLower(priority)]
	if !ok {
		p = priorityRank[PriorityNormal]
	}
	t, ok := priorityRank[strings.ToLower(threshold)]
	if !ok {
		t = priorityRank[PriorityHigh]
	}
	return p >= t
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
