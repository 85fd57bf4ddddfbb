package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// APIKeyHeader carries the account API key on every request.
const APIKeyHeader = "x-meeting-baas-api-key"

type BotClient struct {
	HTTP   *resty.Client
	Config ClientConfig
	log    *logrus.Entry
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// MaxPages bounds FetchAll loops. Zero means DefaultMaxPages.
	MaxPages int
	Logger   *logrus.Logger
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Body)
}

// IsAuthError reports whether err is a rejected API key.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

func New(cfg ClientConfig) *BotClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetTimeout(cfg.Timeout)
	r.SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		r.SetHeader(APIKeyHeader, cfg.APIKey)
	}

	return &BotClient{
		HTTP:   r,
		Config: cfg,
		log:    logger.WithField("component", "client"),
	}
}

// Ping checks the API key by asking for a single bot.
func (c *BotClient) Ping(ctx context.Context) error {
	_, err := c.ListBots(ctx, url.Values{"limit": {"1"}})
	return err
}
