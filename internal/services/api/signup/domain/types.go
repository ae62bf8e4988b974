// Package domain defines signup types and ports
package domain

// Client-facing messages. These are part of the wire contract the site's
// form renders verbatim, so they change together with the frontend copy.
const (
	MsgEmailRequired   = "Valid email is required."
	MsgEmailInvalid    = "Invalid email format."
	MsgCaptchaFailed   = "CAPTCHA verification failed. Please try again."
	MsgTooManyRequests = "Too many requests. Please try again in a minute."
	MsgNotConfigured   = "Email service not configured. Please try again later."

	MsgWelcome           = "You're on the list! Check your inbox for a welcome note."
	MsgAlreadySubscribed = "You're already on the list! We've sent you a reminder."
)

// SignupInput is the POST /signup request body
type SignupInput struct {
	Email string `json:"email"`
	Token string `json:"turnstileToken"`
}

// SignupResult is the 200 response body
type SignupResult struct {
	Message     string `json:"message"`
	IsReturning bool   `json:"isReturning"`
}

// WidgetConfig is what the form needs to render the challenge widget.
// An empty site key tells the client to run with the widget disabled.
type WidgetConfig struct {
	SiteKey string `json:"siteKey"`
}
