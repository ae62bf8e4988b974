// Package captcha talks to a Turnstile-style challenge provider. The server
// side verifies tokens; the widget controller drives the browser-side widget
// that produces them.
package captcha

import (
	"context"
	"time"

	"joinlist/internal/platform/logger"

	"github.com/go-resty/resty/v2"
)

const (
	defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	defaultTimeout   = 5 * time.Second
)

// VerifierOptions configures the Verifier
type VerifierOptions struct {
	// Secret is the server-side verification key. Empty means CAPTCHA is
	// disabled for this deployment and every token passes.
	Secret    string
	VerifyURL string
	Timeout   time.Duration
}

// Verifier checks challenge tokens against the provider's siteverify endpoint
type Verifier struct {
	client *resty.Client
	secret string
	log    logger.Logger
}

// NewVerifier creates a Verifier with sane defaults
func NewVerifier(o VerifierOptions) *Verifier {
	if o.VerifyURL == "" {
		o.VerifyURL = defaultVerifyURL
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	c := resty.New().
		SetBaseURL(o.VerifyURL).
		SetTimeout(o.Timeout)
	return &Verifier{
		client: c,
		secret: o.Secret,
		log:    *logger.Named("captcha"),
	}
}

// siteverifyResponse is the provider's answer
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify reports whether the token passes the challenge.
//
// No secret configured means fail open: the deployment opted out of CAPTCHA,
// so every request passes. A configured secret with an empty token fails
// closed without a network call. Transport errors and malformed provider
// responses also fail closed; they are logged and never surface to the caller.
func (v *Verifier) Verify(ctx context.Context, token string) bool {
	if v.secret == "" {
		return true
	}
	if token == "" {
		return false
	}

	var out siteverifyResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   v.secret,
			"response": token,
		}).
		SetResult(&out).
		Post("")
	if err != nil {
		v.log.Warn().Err(err).Msg("siteverify request failed, failing closed")
		return false
	}
	if resp.IsError() {
		v.log.Warn().Int("status", resp.StatusCode()).Msg("siteverify returned error status, failing closed")
		return false
	}
	if !out.Success {
		v.log.Debug().Strs("error_codes", out.ErrorCodes).Msg("challenge token rejected")
	}
	return out.Success
}
