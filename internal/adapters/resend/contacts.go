package resend

import (
	"context"
	"strings"

	perr "joinlist/internal/platform/errors"
)

// Contact is one audience member as the provider reports it
type Contact struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Unsubscribed bool   `json:"unsubscribed"`
}

// Subscribed reports whether the contact still wants mail
func (c Contact) Subscribed() bool { return !c.Unsubscribed }

type contactListResponse struct {
	Data []Contact `json:"data"`
}

type createContactResponse struct {
	ID string `json:"id"`
}

// ListContacts returns every contact in the audience
func (c *Client) ListContacts(ctx context.Context, audienceID string) ([]Contact, error) {
	var out contactListResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("audience", audienceID).
		SetResult(&out).
		SetError(&apiErr).
		Get("/audiences/{audience}/contacts")
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeProvider, "list contacts")
	}
	if resp.IsError() {
		return nil, perr.Providerf("list contacts: %s (%d)", apiErr.Message, resp.StatusCode())
	}
	return out.Data, nil
}

// CreateContact adds an email to the audience and returns the provider's
// contact id. An already-present contact comes back as an
// ErrorCodeDuplicate error so callers can treat it as success.
func (c *Client) CreateContact(ctx context.Context, audienceID, email string) (string, error) {
	var out createContactResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("audience", audienceID).
		SetBody(map[string]any{"email": email, "unsubscribed": false}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/audiences/{audience}/contacts")
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeProvider, "create contact")
	}
	if resp.IsError() {
		if resp.StatusCode() == 409 || strings.Contains(strings.ToLower(apiErr.Message), "already exists") {
			return "", perr.Duplicatef("contact already exists")
		}
		return "", perr.Providerf("create contact: %s (%d)", apiErr.Message, resp.StatusCode())
	}
	return out.ID, nil
}
