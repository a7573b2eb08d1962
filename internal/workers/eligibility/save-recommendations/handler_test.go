// internal/workers/eligibility/save-recommendations/handler_test.go
package saverecommendations

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/events"
	"loan-marketplace-workers/internal/common/events/eventstest"
	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store/storetest"
)

const insertReco = "INSERT INTO user_loan_reco"

func setup(t *testing.T) (sqlmock.Sqlmock, *Handler, *eventstest.Recorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rec := &eventstest.Recorder{}
	cfg := &Config{Timeout: 5 * time.Second, ProfileTTL: time.Minute, CatalogTTL: time.Minute}
	return mock, NewHandler(cfg, db, rdb, rec, logger.NewTestLogger(t)), rec
}

func supplied() []models.Recommendation {
	return []models.Recommendation{
		{LoanID: "L003", EligibilityScore: 90, RecommendedAmount: 2400000, RecommendedTenureMonths: 150, EstimatedEMI: 24085.4, RecommendationReason: "Best rate of 8.5% from SBI"},
		{LoanID: "L001", EligibilityScore: 90, RecommendedAmount: 1500000, RecommendedTenureMonths: 36, EstimatedEMI: 48754.6, RecommendationReason: "Best rate of 10.5% from HDFC Bank"},
	}
}

func TestHandler_Execute_SavesSuppliedRecommendations(t *testing.T) {
	mock, h, rec := setup(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertReco)
	prep.ExpectExec().
		WithArgs("U001", "L003", 90, sqlmock.AnyArg(), 150, sqlmock.AnyArg(), "Best rate of 8.5% from SBI").
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs("U001", "L001", 90, sqlmock.AnyArg(), 36, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	out, err := h.Execute(context.Background(), &Input{ProfileID: "U001", Recommendations: supplied()})
	require.NoError(t, err)

	assert.Equal(t, &Output{Saved: 1, Skipped: 1}, out)
	require.Equal(t, []string{events.RecommendationsUpdated}, rec.Types())
	assert.Equal(t, "U001", rec.Events()[0].ProfileID)
	assert.Equal(t, 1, rec.Events()[0].Payload["saved"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AllExistingPublishesNothing(t *testing.T) {
	mock, h, rec := setup(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertReco)
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	out, err := h.Execute(context.Background(), &Input{ProfileID: "U001", Recommendations: supplied()})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Skipped)
	assert.Empty(t, rec.Types())
}

func TestHandler_Execute_RecomputesWhenNoneSupplied(t *testing.T) {
	mock, h, rec := setup(t)

	p := storetest.Profile()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
		WithArgs("U001").
		WillReturnRows(storetest.ProfileRows(p))
	mock.ExpectQuery(regexp.QuoteMeta("FROM loans ORDER BY loan_id")).
		WillReturnRows(storetest.LoanRows(storetest.Catalog()...))

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertReco)
	prep.ExpectExec().
		WithArgs("U001", "L003", sqlmock.AnyArg(), "2400000", 150, sqlmock.AnyArg(), "Best rate of 8.5% from SBI").
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs("U001", "L001", sqlmock.AnyArg(), "1500000", 36, sqlmock.AnyArg(), "Best rate of 10.5% from HDFC Bank").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	out, err := h.Execute(context.Background(), &Input{ProfileID: "U001"})
	require.NoError(t, err)
	assert.Equal(t, &Output{Saved: 2, Recomputed: true}, out)
	assert.Equal(t, []string{events.RecommendationsUpdated}, rec.Types())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_IneligibleRecomputeSavesNothing(t *testing.T) {
	mock, h, rec := setup(t)

	p := storetest.Profile()
	p.CreditScore = 550
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
		WillReturnRows(storetest.ProfileRows(p))
	mock.ExpectQuery(regexp.QuoteMeta("FROM loans ORDER BY loan_id")).
		WillReturnRows(storetest.LoanRows(storetest.Catalog()...))

	out, err := h.Execute(context.Background(), &Input{ProfileID: "U001"})
	require.NoError(t, err)
	assert.Equal(t, &Output{Recomputed: true}, out)
	assert.Empty(t, rec.Types())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("recommendation for another profile", func(t *testing.T) {
		_, h, _ := setup(t)
		recs := supplied()
		recs[1].ProfileID = "U009"

		_, err := h.Execute(context.Background(), &Input{ProfileID: "U001", Recommendations: recs})
		assertCode(t, err, apperrors.ErrCodeInvalidInput)
	})

	t.Run("missing loan id", func(t *testing.T) {
		_, h, _ := setup(t)
		recs := supplied()
		recs[0].LoanID = ""

		_, err := h.Execute(context.Background(), &Input{ProfileID: "U001", Recommendations: recs})
		assertCode(t, err, apperrors.ErrCodeInvalidInput)
	})

	t.Run("insert fails and rolls back", func(t *testing.T) {
		mock, h, rec := setup(t)
		mock.ExpectBegin()
		mock.ExpectPrepare(insertReco).ExpectExec().WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := h.Execute(context.Background(), &Input{ProfileID: "U001", Recommendations: supplied()})
		assertCode(t, err, apperrors.ErrCodeQueryExecutionFailed)
		assert.Empty(t, rec.Types())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("profile missing on recompute", func(t *testing.T) {
		mock, h, _ := setup(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
			WillReturnRows(sqlmock.NewRows(storetest.ProfileColumns))

		_, err := h.Execute(context.Background(), &Input{ProfileID: "U404"})
		assertCode(t, err, apperrors.ErrCodeProfileNotFound)
	})
}

func TestHandler_Execute_PublishFailureIsNotFatal(t *testing.T) {
	mock, h, rec := setup(t)
	rec.Err = errors.New("redis down")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertReco)
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	out, err := h.Execute(context.Background(), &Input{ProfileID: "U001", Recommendations: supplied()})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Saved)
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
}
