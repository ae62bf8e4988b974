// Package resend is a thin client for the Resend-compatible contact-list and
// transactional email API. Only the slices of the surface the signup flow
// touches are implemented: audience contact listing/creation and email send.
package resend

import (
	"time"

	"github.com/go-resty/resty/v2"

	"joinlist/internal/platform/logger"
)

const (
	defaultBaseURL = "https://api.resend.com"
	defaultTimeout = 10 * time.Second
)

// Options configures the Client
type Options struct {
	// APIKey is the Bearer token. Empty means the provider is not configured
	// and the caller should refuse work rather than fire unauthenticated calls.
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the provider's REST API
type Client struct {
	http   *resty.Client
	apiKey string
	log    logger.Logger
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	c := resty.New().
		SetBaseURL(o.BaseURL).
		SetTimeout(o.Timeout).
		SetAuthToken(o.APIKey).
		SetHeader("Content-Type", "application/json")
	return &Client{
		http:   c,
		apiKey: o.APIKey,
		log:    *logger.Named("resend"),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool { return c.apiKey != "" }

// apiError is the provider's error body shape
type apiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Name       string `json:"name"`
}
