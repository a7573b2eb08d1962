// internal/workers/catalog/search-loans/handler_test.go
package searchloans

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/logger"
)

const hitsBody = `{
  "took": 3,
  "hits": {
    "total": {"value": 2, "relation": "eq"},
    "hits": [
      {"_id": "L003", "_source": {"loan_id": "L003", "bank_name": "SBI", "loan_type": "home", "interest_rate": 8.5,
        "min_amount": 500000, "max_amount": 4000000, "min_tenure_months": 60, "max_tenure_months": 240,
        "min_income": 50000, "min_credit_score": 750, "features": ["Low rate"]}},
      {"_id": "L004", "_source": {"loan_id": "L004", "bank_name": "ICICI", "loan_type": "home", "interest_rate": 8.9,
        "min_amount": 300000, "max_amount": 5000000, "min_tenure_months": 60, "max_tenure_months": 300,
        "min_income": 40000, "min_credit_score": 700}}
    ]
  }
}`

type capture struct {
	path  string
	query map[string]string
	body  map[string]interface{}
}

func newServer(t *testing.T, status int, body string, delay time.Duration, got *capture) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			got.path = r.URL.Path
			got.query = map[string]string{}
			for k := range r.URL.Query() {
				got.query[k] = r.URL.Query().Get(k)
			}
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &got.body)
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{srv.URL},
		DisableRetry: true,
	})
	require.NoError(t, err)
	return client
}

func newHandler(t *testing.T, client *elasticsearch.Client) *Handler {
	cfg := &Config{Index: "loans", DefaultSize: 10, MaxSize: 50, Timeout: time.Second}
	return NewHandler(cfg, client, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	var got capture
	h := newHandler(t, newServer(t, http.StatusOK, hitsBody, 0, &got))

	in := &Input{LoanType: "Home", Amount: 2000000, MonthlyIncome: 120000, CreditScore: 780}
	in.Pagination.From = 10
	out, err := h.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.TotalHits)
	assert.Equal(t, 3, out.Took)
	require.Len(t, out.Loans, 2)
	assert.Equal(t, "L003", out.Loans[0].LoanID)
	assert.Equal(t, "SBI", out.Loans[0].BankName)
	assert.Equal(t, 4000000.0, out.Loans[0].MaxAmount)
	assert.Equal(t, []string{"Low rate"}, out.Loans[0].Features)

	assert.Equal(t, "/loans/_search", got.path)
	assert.Equal(t, "10", got.query["from"])
	assert.Equal(t, "10", got.query["size"])

	filters := got.body["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	require.Len(t, filters, 5)
	assert.Equal(t, map[string]interface{}{"term": map[string]interface{}{"loan_type": "home"}}, filters[0])
	assert.Equal(t, map[string]interface{}{"range": map[string]interface{}{"min_amount": map[string]interface{}{"lte": 2000000.0}}}, filters[1])
	assert.Equal(t, map[string]interface{}{"range": map[string]interface{}{"max_amount": map[string]interface{}{"gte": 2000000.0}}}, filters[2])
	assert.Equal(t, map[string]interface{}{"range": map[string]interface{}{"min_income": map[string]interface{}{"lte": 120000.0}}}, filters[3])
	assert.Equal(t, map[string]interface{}{"range": map[string]interface{}{"min_credit_score": map[string]interface{}{"lte": 780.0}}}, filters[4])

	sort := got.body["sort"].([]interface{})
	assert.Equal(t, map[string]interface{}{"interest_rate": map[string]interface{}{"order": "asc"}}, sort[0])
}

func TestHandler_Execute_NoFiltersMatchesAll(t *testing.T) {
	var got capture
	h := newHandler(t, newServer(t, http.StatusOK, `{"took":1,"hits":{"total":{"value":0},"hits":[]}}`, 0, &got))

	in := &Input{}
	in.Pagination.Size = 500
	out, err := h.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Empty(t, out.Loans)
	assert.NotNil(t, out.Loans)
	assert.Contains(t, got.body["query"], "match_all")
	assert.Equal(t, "50", got.query["size"])
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		delay  time.Duration
		want   apperrors.ErrorCode
	}{
		{
			name:   "missing index",
			status: http.StatusNotFound,
			body:   `{"error":{"type":"index_not_found_exception","reason":"no such index [loans]"},"status":404}`,
			want:   apperrors.ErrCodeIndexNotFound,
		},
		{
			name:   "bad query",
			status: http.StatusBadRequest,
			body:   `{"error":{"type":"search_phase_execution_exception","reason":"all shards failed"},"status":400}`,
			want:   apperrors.ErrCodeSearchQueryFailed,
		},
		{
			name:   "malformed response",
			status: http.StatusOK,
			body:   `{"hits": [`,
			want:   apperrors.ErrCodeSearchQueryFailed,
		},
		{
			name:   "timeout",
			status: http.StatusOK,
			body:   hitsBody,
			delay:  500 * time.Millisecond,
			want:   apperrors.ErrCodeSearchTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, newServer(t, tt.status, tt.body, tt.delay, nil))

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			_, err := h.Execute(ctx, &Input{LoanType: "personal"})
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.want, stdErr.Code)
		})
	}
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	h := newHandler(t, newServer(t, http.StatusOK, hitsBody, 0, nil))

	for _, in := range []*Input{
		{LoanType: "yacht"},
		{Amount: -1},
		{CreditScore: -5},
	} {
		_, err := h.Execute(context.Background(), in)
		stdErr, ok := apperrors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
	}
}
