package resend

import (
	"context"

	"github.com/google/uuid"

	perr "joinlist/internal/platform/errors"
)

// EmailRequest is one transactional send
type EmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

// SendEmail delivers one email and returns the provider's message id.
// Each send carries a fresh idempotency key so a retried HTTP attempt
// cannot double-deliver.
func (c *Client) SendEmail(ctx context.Context, req EmailRequest) (string, error) {
	var out sendEmailResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeProvider, "send email")
	}
	if resp.IsError() {
		return "", perr.Providerf("send email: %s (%d)", apiErr.Message, resp.StatusCode())
	}
	c.log.Debug().Str("email_id", out.ID).Msg("email accepted by provider")
	return out.ID, nil
}
