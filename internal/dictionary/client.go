package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

//go:generate mockgen -source=client.go -destination=../mocks/dictionary/mock_lookup.go -package=mock_dictionary Lookup

// Lookup defines the remote definition service operations the session
// manager depends on.
type Lookup interface {
	Search(ctx context.Context, word string, languageCode string) ([]Definition, error)
	WordOfTheDay(ctx context.Context, languageCode string) (Definition, error)
}

// Config holds the remote service settings.
type Config struct {
	BaseURL string
	// Timeout bounds every request so a lookup cannot stay pending forever.
	Timeout time.Duration
	// RetryAttempts is the number of extra attempts after the first failed
	// request. Zero keeps the single-shot behavior.
	RetryAttempts uint
	// CacheDirectory enables a local file cache of successful search
	// responses when non-empty.
	CacheDirectory string
}

// Client talks to the dictionary service over HTTP.
type Client struct {
	httpClient    *resty.Client
	retryAttempts uint
	fileCache     *FileCache
}

var _ Lookup = (*Client)(nil)

// NewClient creates a Client from the given config.
func NewClient(cfg Config) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(cfg.BaseURL)
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	var fileCache *FileCache
	if cfg.CacheDirectory != "" {
		fileCache = NewFileCache(cfg.CacheDirectory)
	}
	return &Client{
		httpClient:    httpClient,
		retryAttempts: cfg.RetryAttempts,
		fileCache:     fileCache,
	}
}

// Search looks up the definitions of a word.
func (c *Client) Search(ctx context.Context, word string, languageCode string) ([]Definition, error) {
	fetch := func() ([]byte, error) {
		return c.get(ctx, "/search", map[string]string{
			"word": word,
			"lang": languageCode,
		})
	}

	var body []byte
	var err error
	if c.fileCache != nil {
		body, err = c.fileCache.Fetch(word+"_"+languageCode, fetch)
	} else {
		body, err = fetch()
	}
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return response.Results, nil
}

// WordOfTheDay fetches the daily pick for a language. Responses are never
// cached on disk because the pick rotates server-side.
func (c *Client) WordOfTheDay(ctx context.Context, languageCode string) (Definition, error) {
	var definition Definition
	body, err := c.get(ctx, "/word-of-the-day", map[string]string{
		"lang": languageCode,
	})
	if err != nil {
		return definition, err
	}
	if err := json.Unmarshal(body, &definition); err != nil {
		return definition, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return definition, nil
}

func (c *Client) get(ctx context.Context, path string, queryParams map[string]string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			res, err := c.httpClient.R().
				SetContext(ctx).
				SetQueryParams(queryParams).
				Get(path)
			if err != nil {
				return &LookupError{
					Kind:    RemoteUnavailable,
					Message: GenericFailureMessage,
					cause:   fmt.Errorf("client.R.Get(%s) > %w", path, err),
				}
			}
			if res.IsError() {
				lookupErr := &LookupError{
					Kind:       RemoteRejected,
					Message:    messageFromBody(res.Body()),
					StatusCode: res.StatusCode(),
				}
				if res.StatusCode() < http.StatusInternalServerError {
					return retry.Unrecoverable(lookupErr)
				}
				return lookupErr
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts+1),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			slog.Default().Debug("retrying dictionary request",
				"path", path,
				"attempt", attempt,
				"error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// messageFromBody extracts the detail message from a structured error body,
// falling back to the generic message.
func messageFromBody(body []byte) string {
	var response errorResponse
	if err := json.Unmarshal(body, &response); err != nil || response.Detail == "" {
		return GenericFailureMessage
	}
	return response.Detail
}
