// internal/store/joberrors.go
package store

import (
	"context"
	"errors"

	apperrors "loan-marketplace-workers/internal/common/errors"
)

// QueryError classifies a failed query for job error reporting.
// ErrNotFound and ErrDuplicate are left for callers to map.
func QueryError(queryName string, err error) *apperrors.StandardError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(queryName, err)
	}
	return apperrors.NewQueryExecutionFailedError(queryName, err)
}
