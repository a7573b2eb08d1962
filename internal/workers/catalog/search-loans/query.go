// internal/workers/catalog/search-loans/query.go
package searchloans

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// buildQuery turns the input filters into a bool query of filter clauses.
// Zero-valued filters are left out.
func buildQuery(in *Input) map[string]interface{} {
	filters := []interface{}{}

	if in.LoanType != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"loan_type": in.LoanType},
		})
	}
	if in.Amount > 0 {
		filters = append(filters,
			map[string]interface{}{"range": map[string]interface{}{"min_amount": map[string]interface{}{"lte": in.Amount}}},
			map[string]interface{}{"range": map[string]interface{}{"max_amount": map[string]interface{}{"gte": in.Amount}}},
		)
	}
	if in.MonthlyIncome > 0 {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"min_income": map[string]interface{}{"lte": in.MonthlyIncome}},
		})
	}
	if in.CreditScore > 0 {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"min_credit_score": map[string]interface{}{"lte": in.CreditScore}},
		})
	}

	var query map[string]interface{}
	if len(filters) == 0 {
		query = map[string]interface{}{"match_all": map[string]interface{}{}}
	} else {
		query = map[string]interface{}{"bool": map[string]interface{}{"filter": filters}}
	}

	return map[string]interface{}{
		"query": query,
		"sort": []interface{}{
			map[string]interface{}{"interest_rate": map[string]interface{}{"order": "asc"}},
			map[string]interface{}{"loan_id": map[string]interface{}{"order": "asc"}},
		},
	}
}

func buildRequest(index string, in *Input, from, size int) (*esapi.SearchRequest, error) {
	body, err := json.Marshal(buildQuery(in))
	if err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}
	return &esapi.SearchRequest{
		Index:          []string{index},
		Body:           bytes.NewReader(body),
		From:           &from,
		Size:           &size,
		TrackTotalHits: true,
	}, nil
}
