package books

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request when none is configured
const DefaultTimeout = 5 * time.Second

// Options configures an APIClient
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	Retry      RetryConfig
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// APIClient talks to the book REST API. One client is shared by every
// request of a session.
type APIClient struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	retry     RetryConfig
	http      *http.Client
	logger    *zap.Logger
}

// NewAPIClient creates a new API client
func NewAPIClient(opts Options) *APIClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retry.MaxAttempts < 1 {
		opts.Retry = NoRetry
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &APIClient{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		retry:     opts.Retry,
		http:      opts.HTTPClient,
		logger:    opts.Logger,
	}
}

// BaseURL returns the API root the client is bound to
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// FetchAll issues GET <base>/books
func (c *APIClient) FetchAll(ctx context.Context) ([]Book, error) {
	url := c.baseURL + "/books"
	body, err := c.get(ctx, url, "books")
	if err != nil {
		return nil, err
	}

	books, err := DecodeBooks(body)
	if err != nil {
		return nil, &Error{Kind: KindParse, Target: "books", URL: url, Err: err}
	}
	return books, nil
}

// FetchOne issues GET <base>/books/{id}
func (c *APIClient) FetchOne(ctx context.Context, id int) (Book, error) {
	if id <= 0 {
		return Book{}, fmt.Errorf("%w: got %d", ErrInvalidID, id)
	}

	target := fmt.Sprintf("book %d", id)
	url := fmt.Sprintf("%s/books/%d", c.baseURL, id)
	body, err := c.get(ctx, url, target)
	if err != nil {
		return Book{}, err
	}

	book, err := DecodeBook(body)
	if err != nil {
		return Book{}, &Error{Kind: KindParse, Target: target, URL: url, Err: err}
	}
	return book, nil
}

// get fetches url and returns the body of a 200 OK response
func (c *APIClient) get(ctx context.Context, url, target string) ([]byte, error) {
	var body []byte
	attempt := 0

	err := RetryOperation(ctx, c.retry, func() (int, error) {
		attempt++
		b, code, err := c.do(ctx, url, target, attempt)
		body = b
		return code, err
	})
	if err != nil {
		if _, ok := KindOf(err); !ok {
			err = &Error{Kind: KindNetwork, Target: target, URL: url, Err: err}
		}
		return nil, err
	}
	return body, nil
}

func (c *APIClient) do(ctx context.Context, url, target string, attempt int) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &Error{Kind: KindNetwork, Target: target, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, 0, &Error{Kind: KindNetwork, Target: target, URL: url, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("response received",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("attempt", attempt),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &Error{
			Kind:       KindStatus,
			Target:     target,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Kind: KindNetwork, Target: target, URL: url, Err: err}
	}
	return body, resp.StatusCode, nil
}
