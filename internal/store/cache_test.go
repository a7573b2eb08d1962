package store

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "user:profile:U001", ProfileKey("U001"))
	assert.Equal(t, "loans:catalog:all", CatalogKey(""))
	assert.Equal(t, "loans:catalog:home", CatalogKey("home"))
}

// ==========================
// Profiles
// ==========================

func TestProfiles_Get_CacheMiss(t *testing.T) {
	db, mock := setupMockDB(t)
	rdb, redisMock := redismock.NewClientMock()
	ttl := 5 * time.Minute
	want := testProfile()

	data, err := json.Marshal(want)
	require.NoError(t, err)

	redisMock.ExpectGet("user:profile:U001").RedisNil()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
		WithArgs("U001").
		WillReturnRows(profileRow(want))
	redisMock.ExpectSet("user:profile:U001", data, ttl).SetVal("OK")

	got, err := NewProfiles(db, rdb, ttl).Get(context.Background(), "U001")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProfiles_Get_CacheHit(t *testing.T) {
	db, mock := setupMockDB(t)
	rdb, redisMock := redismock.NewClientMock()
	want := testProfile()

	data, err := json.Marshal(want)
	require.NoError(t, err)
	redisMock.ExpectGet("user:profile:U001").SetVal(string(data))

	got, err := NewProfiles(db, rdb, time.Minute).Get(context.Background(), "U001")
	require.NoError(t, err)
	assert.Equal(t, want.ProfileID, got.ProfileID)
	assert.Equal(t, want.CreditScore, got.CreditScore)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProfiles_Invalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	require.NoError(t, mr.Set("user:profile:U001", "{}"))

	db, _ := setupMockDB(t)
	require.NoError(t, NewProfiles(db, rdb, time.Minute).Invalidate(context.Background(), "U001"))
	assert.False(t, mr.Exists("user:profile:U001"))
}

func TestProfiles_NilRedisReadsDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE profile_id = $1")).
		WithArgs("U001").
		WillReturnRows(profileRow(testProfile()))

	p := NewProfiles(db, nil, time.Minute)
	_, err := p.Get(context.Background(), "U001")
	require.NoError(t, err)
	assert.NoError(t, p.Invalidate(context.Background(), "U001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Catalog
// ==========================

func TestCatalog_Loans_ReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM loans ORDER BY loan_id")).WillReturnRows(loanRows())

	catalog := NewCatalog(db, rdb, 10*time.Minute)

	first, err := catalog.Loans(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, first, 2)

	// served from redis; sqlmock would fail an unexpected second query
	second, err := catalog.Loans(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].LoanID, second[i].LoanID)
		assert.Equal(t, first[i].InterestRate, second[i].InterestRate)
	}

	assert.True(t, mr.Exists("loans:catalog:all"))
	assert.Equal(t, 10*time.Minute, mr.TTL("loans:catalog:all"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalog_Loans_RedisDownFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE loan_type = $1")).
		WithArgs("personal").
		WillReturnRows(loanRows())

	loans, err := NewCatalog(db, rdb, time.Minute).Loans(context.Background(), "personal")
	require.NoError(t, err)
	assert.Len(t, loans, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
