package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/store/storetest"
)

func writeJSON(t *testing.T, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func loanIDs(r report) []string {
	ids := make([]string, 0, len(r.Recommendations))
	for _, reco := range r.Recommendations {
		ids = append(ids, reco.LoanID)
	}
	return ids
}

func TestScoreCommand(t *testing.T) {
	profile := writeJSON(t, "profile.json", storetest.Profile())
	catalog := writeJSON(t, "catalog.json", storetest.Catalog())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"score", "--profile", profile, "--catalog", catalog})
	require.NoError(t, rootCmd.Execute())

	var r report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, "U001", r.ProfileID)
	assert.True(t, r.Eligibility.Eligible)
	assert.NotContains(t, loanIDs(r), "L002", "credit score below the product minimum")
	assert.Len(t, r.Recommendations, len(r.Eligibility.RecommendedLoans))
}

func TestScoreFiles_Errors(t *testing.T) {
	catalog := writeJSON(t, "catalog.json", storetest.Catalog())

	_, err := scoreFiles(filepath.Join(t.TempDir(), "missing.json"), catalog)
	assert.ErrorContains(t, err, "read ")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = scoreFiles(bad, catalog)
	assert.ErrorContains(t, err, "parse ")

	invalid := storetest.Profile()
	invalid.MonthlyIncome = -1
	_, err = scoreFiles(writeJSON(t, "invalid.json", invalid), catalog)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeProfileValidationFailed, stdErr.Code)
}

func TestScoreStored(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	personal := storetest.Catalog()[:2]
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
		WithArgs("U001").
		WillReturnRows(storetest.ProfileRows(storetest.Profile()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM loans WHERE loan_type = $1")).
		WithArgs("personal").
		WillReturnRows(storetest.LoanRows(personal...))

	r, err := scoreStored(context.Background(), db, "U001", " Personal ")
	require.NoError(t, err)
	assert.Equal(t, []string{"L001"}, loanIDs(r))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreStored_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = scoreStored(context.Background(), db, "U001", "yacht")
	assert.ErrorContains(t, err, `unknown loan type "yacht"`)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
		WithArgs("U404").
		WillReturnRows(sqlmock.NewRows(storetest.ProfileColumns))

	_, err = scoreStored(context.Background(), db, "U404", "")
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeProfileNotFound, stdErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
