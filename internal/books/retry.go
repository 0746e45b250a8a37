package books

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/billmal071/bookshelf/internal/config"
)

// RetryConfig holds retry settings
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// NoRetry makes exactly one attempt
var NoRetry = RetryConfig{MaxAttempts: 1}

// DefaultRetryConfig returns retry config from app settings
func DefaultRetryConfig() RetryConfig {
	cfg := config.Get()
	return RetryConfig{
		MaxAttempts: cfg.Network.RetryAttempts,
		BaseDelay:   cfg.Network.RetryBaseDelay,
		MaxDelay:    cfg.Network.RetryMaxDelay,
		Multiplier:  cfg.Network.RetryMultiplier,
	}
}

// ErrorCategory categorizes errors for retry decisions
type ErrorCategory int

const (
	// ErrorRetryable - temporary errors that should be retried
	ErrorRetryable ErrorCategory = iota
	// ErrorNonRetryable - permanent errors that should not be retried
	ErrorNonRetryable
	// ErrorRateLimited - rate limiting, should wait longer
	ErrorRateLimited
)

// CategorizeError determines how a failed attempt should be handled
func CategorizeError(err error, statusCode int) ErrorCategory {
	if kind, ok := KindOf(err); ok && kind == KindParse {
		return ErrorNonRetryable
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrorRateLimited
	case statusCode >= 500:
		return ErrorRetryable
	case statusCode != 0:
		// 4xx and anything else unexpected will not change on a second try
		return ErrorNonRetryable
	}

	if err == nil {
		return ErrorRetryable
	}

	if errors.Is(err, context.Canceled) {
		return ErrorNonRetryable
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorRetryable
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"connection reset",
		"connection refused",
		"no such host",
		"temporary failure",
		"timeout",
		"eof",
		"broken pipe",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return ErrorRetryable
		}
	}

	return ErrorNonRetryable
}

// CalculateBackoff calculates the next backoff duration with jitter
func CalculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	if attempt <= 0 {
		return cfg.BaseDelay
	}

	// base * multiplier^attempt
	delay := float64(cfg.BaseDelay)
	for i := 0; i < attempt; i++ {
		delay *= cfg.Multiplier
	}

	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}

	// ±25% jitter
	jitter := delay * 0.25 * (rand.Float64()*2 - 1)
	delay += jitter

	return time.Duration(delay)
}

// RetryOperation runs operation until it succeeds, fails permanently or runs
// out of attempts. operation reports the HTTP status it observed (0 if none).
func RetryOperation(ctx context.Context, cfg RetryConfig, operation func() (int, error)) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	var statusCode int

	for attempt := 0; attempt < attempts; attempt++ {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return lastErr
			}
			return ctx.Err()
		default:
		}

		statusCode, lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if attempt == attempts-1 {
			break
		}

		var wait time.Duration
		switch CategorizeError(lastErr, statusCode) {
		case ErrorNonRetryable:
			return lastErr
		case ErrorRateLimited:
			wait = cfg.MaxDelay
		case ErrorRetryable:
			wait = CalculateBackoff(attempt, cfg)
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(wait):
		}
	}

	return lastErr
}
