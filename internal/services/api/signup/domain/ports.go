package domain

import "context"

// Contact is the slice of a provider contact record the signup flow reads
type Contact struct {
	Email      string
	Subscribed bool
}

// CaptchaPort verifies a challenge token. Implementations decide the
// fail-open/closed policy for missing configuration.
type CaptchaPort interface {
	Verify(ctx context.Context, token string) bool
}

// ContactsPort is the external contact-list provider scoped to one audience
type ContactsPort interface {
	List(ctx context.Context, audienceID string) ([]Contact, error)
	// Create returns ErrorCodeDuplicate when the contact already exists
	Create(ctx context.Context, audienceID, email string) error
}

// MailerPort delivers one transactional email
type MailerPort interface {
	Send(ctx context.Context, to, subject, html string) error
}
