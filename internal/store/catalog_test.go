package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_ListLoans(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM loans ORDER BY loan_id")).WillReturnRows(loanRows())

	loans, err := repo.ListLoans(context.Background())
	require.NoError(t, err)
	require.Len(t, loans, 2)

	assert.Equal(t, "L001", loans[0].LoanID)
	assert.Equal(t, 10.5, loans[0].InterestRate)
	assert.Equal(t, []string{"Salaried", "Self-Employed"}, loans[0].EmploymentTypes)
	assert.Equal(t, []string{"No collateral", "Quick disbursal"}, loans[0].Features)
	assert.Equal(t, 21, loans[0].MinAge)
	assert.Empty(t, loans[1].Features)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_LoansByType(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE loan_type = $1 ORDER BY interest_rate ASC")).
		WithArgs("auto").
		WillReturnRows(sqlmock.NewRows(loanColumnNames).
			AddRow("L004", "Axis Bank", "auto", 9.0, 100000.0, 1500000.0, 12, 84, 20000.0, 600, 0, 0, "{}", 0.0, "{}"))

	loans, err := repo.LoansByType(context.Background(), "auto")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Axis Bank", loans[0].BankName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_GetLoan(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM loans WHERE loan_id = $1")).
			WithArgs("L999").
			WillReturnRows(sqlmock.NewRows(loanColumnNames))

		_, err := NewCatalogRepository(db).GetLoan(context.Background(), "L999")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM loans WHERE loan_id = $1")).
			WithArgs("L001").
			WillReturnError(errors.New("connection refused"))

		_, err := NewCatalogRepository(db).GetLoan(context.Background(), "L001")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
