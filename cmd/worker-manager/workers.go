// cmd/worker-manager/workers.go
package main

import (
	"database/sql"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"loan-marketplace-workers/internal/common/aws"
	"loan-marketplace-workers/internal/common/camunda"
	"loan-marketplace-workers/internal/common/config"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/logger"

	chat "loan-marketplace-workers/internal/workers/ai-conversation/chat-assistant"
	apply "loan-marketplace-workers/internal/workers/application/apply-loan"
	applied "loan-marketplace-workers/internal/workers/application/list-applied-loans"
	notify "loan-marketplace-workers/internal/workers/application/send-notification"
	bytype "loan-marketplace-workers/internal/workers/catalog/loans-by-type"
	search "loan-marketplace-workers/internal/workers/catalog/search-loans"
	clearreco "loan-marketplace-workers/internal/workers/eligibility/clear-recommendations"
	eligible "loan-marketplace-workers/internal/workers/eligibility/find-eligible-loans"
	getreco "loan-marketplace-workers/internal/workers/eligibility/get-recommendations"
	savereco "loan-marketplace-workers/internal/workers/eligibility/save-recommendations"
	createprofile "loan-marketplace-workers/internal/workers/profile/create-profile"
	getprofile "loan-marketplace-workers/internal/workers/profile/get-profile"
	updateprofile "loan-marketplace-workers/internal/workers/profile/update-profile"
)

type dependencies struct {
	cfg       *config.Config
	db        *sql.DB
	redis     *redis.Client
	search    *elasticsearch.Client
	publisher events.Publisher
	mailer    *aws.Mailer
	texter    *aws.Texter
	log       logger.Logger
}

func (d *dependencies) timeout(taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(d.cfg, taskType).Timeout)
}

func (d *dependencies) profileTTL() time.Duration {
	return config.GetDuration(d.cfg.Cache.ProfileTTL)
}

func (d *dependencies) catalogTTL() time.Duration {
	return config.GetDuration(d.cfg.Cache.CatalogTTL)
}

// handlers builds one handler per task type. search-loans is left out
// when Elasticsearch is not configured.
func (d *dependencies) handlers() map[string]camunda.JobHandler {
	h := map[string]camunda.JobHandler{}

	// eligibility
	h[eligible.TaskType] = eligible.NewHandler(&eligible.Config{
		Timeout:    d.timeout(eligible.TaskType),
		ProfileTTL: d.profileTTL(),
		CatalogTTL: d.catalogTTL(),
	}, d.db, d.redis, d.log)
	h[savereco.TaskType] = savereco.NewHandler(&savereco.Config{
		Timeout:    d.timeout(savereco.TaskType),
		ProfileTTL: d.profileTTL(),
		CatalogTTL: d.catalogTTL(),
	}, d.db, d.redis, d.publisher, d.log)
	h[getreco.TaskType] = getreco.NewHandler(&getreco.Config{Timeout: d.timeout(getreco.TaskType)}, d.db, d.log)
	h[clearreco.TaskType] = clearreco.NewHandler(&clearreco.Config{Timeout: d.timeout(clearreco.TaskType)}, d.db, d.publisher, d.log)

	// profile
	h[createprofile.TaskType] = createprofile.NewHandler(&createprofile.Config{Timeout: d.timeout(createprofile.TaskType)}, d.db, d.log)
	h[getprofile.TaskType] = getprofile.NewHandler(&getprofile.Config{
		Timeout:    d.timeout(getprofile.TaskType),
		ProfileTTL: d.profileTTL(),
	}, d.db, d.redis, d.log)
	h[updateprofile.TaskType] = updateprofile.NewHandler(&updateprofile.Config{
		Timeout:    d.timeout(updateprofile.TaskType),
		ProfileTTL: d.profileTTL(),
	}, d.db, d.redis, d.publisher, d.log)

	// catalog
	h[bytype.TaskType] = bytype.NewHandler(&bytype.Config{
		Timeout:    d.timeout(bytype.TaskType),
		CatalogTTL: d.catalogTTL(),
	}, d.db, d.redis, d.log)
	if d.search != nil {
		h[search.TaskType] = search.NewHandler(&search.Config{
			Index:       d.cfg.Search.LoansIndex,
			DefaultSize: d.cfg.Search.DefaultSize,
			MaxSize:     100,
			Timeout:     d.timeout(search.TaskType),
		}, d.search, d.log)
	}

	// application
	h[apply.TaskType] = apply.NewHandler(&apply.Config{
		Timeout:    d.timeout(apply.TaskType),
		ProfileTTL: d.profileTTL(),
	}, d.db, d.redis, d.publisher, d.log)
	h[applied.TaskType] = applied.NewHandler(&applied.Config{Timeout: d.timeout(applied.TaskType)}, d.db, d.log)

	var email notify.EmailSender
	if d.mailer != nil {
		email = d.mailer
	}
	var sms notify.SMSSender
	if d.texter != nil {
		sms = d.texter
	}
	h[notify.TaskType] = notify.NewHandler(
		notify.ConfigFrom(d.cfg.Notifications, d.timeout(notify.TaskType), d.profileTTL()),
		d.db, d.redis, email, sms, d.log,
	)

	// ai-conversation
	genai := d.cfg.APIs.GenAI
	chatCfg := chat.LoadConfig()
	chatCfg.GenAIBaseURL = genai.BaseURL
	chatCfg.APIKey = genai.APIKey
	chatCfg.MaxRetries = genai.MaxRetries
	chatCfg.ProfileTTL = d.profileTTL()
	chatCfg.CatalogTTL = d.catalogTTL()
	chatCfg.Timeout = config.GetDuration(genai.Timeout)
	if wc, ok := d.cfg.Workers[chat.TaskType]; ok && wc.Timeout > 0 {
		chatCfg.Timeout = config.GetDuration(wc.Timeout)
	}
	h[chat.TaskType] = chat.NewHandler(chatCfg, d.db, d.redis, d.publisher, d.log)

	return h
}

// startWorkers opens a job worker for every enabled task type.
func startWorkers(client zbc.Client, d *dependencies, in camunda.Instrumentation) []*camunda.CamundaWorker {
	var started []*camunda.CamundaWorker
	for taskType, handler := range d.handlers() {
		wc := config.GetWorkerConfig(d.cfg, taskType)
		if !wc.Enabled {
			d.log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		started = append(started, camunda.NewWorker(client, taskType, wc, handler, in))
	}
	return started
}
