package camunda

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"loan-marketplace-workers/internal/common/config"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{status.Error(codes.Unavailable, "gateway down"), true},
		{status.Error(codes.ResourceExhausted, "backpressure"), true},
		{status.Error(codes.NotFound, "no such job"), false},
		{status.Error(codes.InvalidArgument, "bad variables"), false},
		{fmt.Errorf("send: %w", context.DeadlineExceeded), true},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("something else"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRetryableZeebeError(tt.err), tt.err.Error())
	}
}

func testClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{RetryConfig: &RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}}}
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("recovers from transient failure", func(t *testing.T) {
		attempts := 0
		result, err := testClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			if attempts < 3 {
				return nil, status.Error(codes.Unavailable, "unavailable")
			}
			return "ok", nil
		}, "publish message")

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops on permanent failure", func(t *testing.T) {
		attempts := 0
		_, err := testClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, status.Error(codes.InvalidArgument, "bad correlation key")
		}, "publish message")

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, codes.InvalidArgument, status.Code(errors.Unwrap(err)))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		_, err := testClient(2).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			attempts++
			return nil, errors.New("connection reset by peer")
		}, "publish message")

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Contains(t, err.Error(), "after 3 attempt(s)")
	})

	t.Run("honours cancellation", func(t *testing.T) {
		c := testClient(5)
		c.config.RetryConfig.BaseDelay = time.Hour
		c.config.RetryConfig.MaxDelay = time.Hour

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.ExecuteWithRetry(ctx, func(context.Context) (interface{}, error) {
			return nil, errors.New("timeout")
		}, "publish message")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfigFrom(t *testing.T) {
	cc := ConfigFrom(config.CamundaConfig{
		BrokerAddress:  "zeebe:26500",
		UsePlaintext:   true,
		Timeout:        5000,
		RequestTimeout: 2000,
	})
	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.True(t, cc.UsePlaintextConnection)
	assert.Equal(t, 5*time.Second, cc.ConnectionTimeout)
	assert.Equal(t, 2*time.Second, cc.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cc.RetryConfig)
}
