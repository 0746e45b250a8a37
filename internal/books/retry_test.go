package books

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeError(t *testing.T) {
	assert.Equal(t, ErrorRateLimited, CategorizeError(errors.New("x"), http.StatusTooManyRequests))
	assert.Equal(t, ErrorRetryable, CategorizeError(errors.New("x"), http.StatusBadGateway))
	assert.Equal(t, ErrorNonRetryable, CategorizeError(errors.New("x"), http.StatusNotFound))
	assert.Equal(t, ErrorRetryable, CategorizeError(errors.New("dial tcp: connection refused"), 0))
	assert.Equal(t, ErrorNonRetryable, CategorizeError(&Error{Kind: KindParse, Err: errors.New("unexpected EOF")}, http.StatusOK))
	assert.Equal(t, ErrorNonRetryable, CategorizeError(context.Canceled, 0))
	assert.Equal(t, ErrorNonRetryable, CategorizeError(errors.New("something odd"), 0))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, CalculateBackoff(0, cfg))

	d := CalculateBackoff(1, cfg)
	assert.GreaterOrEqual(t, d, 150*time.Millisecond)
	assert.LessOrEqual(t, d, 250*time.Millisecond)

	d = CalculateBackoff(10, cfg)
	assert.LessOrEqual(t, d, 1250*time.Millisecond)
}

func TestRetryOperation_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryOperation(ctx, RetryConfig{MaxAttempts: 3}, func() (int, error) {
		calls++
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestRetryOperation_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := RetryOperation(context.Background(), RetryConfig{}, func() (int, error) {
		calls++
		return http.StatusServiceUnavailable, errors.New("unavailable")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
