// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// readiness reports ready only when every backing service answers.
type readiness struct {
	pg    pinger
	redis pinger
	zeebe healthChecker
}

func (r *readiness) check(ctx context.Context) map[string]string {
	checks := map[string]string{}
	record := func(name string, err error) {
		if err != nil {
			checks[name] = err.Error()
			return
		}
		checks[name] = "ok"
	}
	record("postgres", r.pg.Ping(ctx))
	record("redis", r.redis.Ping(ctx))
	record("zeebe", r.zeebe.HealthCheck(ctx))
	return checks
}

func newHealthServer(addr string, ready *readiness) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := ready.check(ctx)
		status, code := "ready", http.StatusOK
		for _, v := range checks {
			if v != "ok" {
				status, code = "not_ready", http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func serve(srv *http.Server, log *zap.Logger) {
	log.Info("Health/Metrics server listening", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Health/Metrics server failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
