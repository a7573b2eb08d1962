package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-marketplace-workers/internal/common/config"
)

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	c := &PostgresClient{DB: db}
	assert.NoError(t, c.Ping(context.Background()))
	assert.ErrorContains(t, c.Ping(context.Background()), "postgres ping failed")
	assert.NoError(t, c.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgres_DoesNotDial(t *testing.T) {
	c, err := NewPostgres(config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, Database: "loans", User: "u", SSLMode: "disable",
		MaxConnections: 2, MaxIdle: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.DB.Stats().MaxOpenConnections)
	assert.NoError(t, c.Close())
}

func TestRedisClient_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	c := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer c.Close()

	assert.NoError(t, c.Ping(context.Background()))

	addr := mr.Addr()
	mr.Close()
	assert.ErrorContains(t, c.Ping(context.Background()), "redis "+addr)
}

func TestRedisOptions(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Address: "cache:6379", DB: 2, PoolSize: 20, MinIdleConns: 4})
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
}

func TestElasticsearchClient_Ping(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))

	status = http.StatusServiceUnavailable
	assert.ErrorContains(t, c.Ping(context.Background()), "503")
}
