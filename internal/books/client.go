package books

import (
	"go.uber.org/zap"

	"github.com/billmal071/bookshelf/internal/config"
)

// NewClient creates a book API client from the current configuration
func NewClient(logger *zap.Logger) *APIClient {
	cfg := config.Get()

	return NewAPIClient(Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.Network.Timeout,
		UserAgent: cfg.Network.UserAgent,
		Retry:     DefaultRetryConfig(),
		Logger:    logger.Named("books"),
	})
}
