package module

import (
	"time"

	"joinlist/internal/platform/config"
)

// defaultFrom is the provider's shared onboarding sender, used until a real
// domain is verified
const defaultFrom = "JoinList <onboarding@resend.dev>"

// Options controls signup behavior and provider client settings
type Options struct {
	// Email provider
	APIKey       string
	EmailBaseURL string
	FromAddress  string
	AudienceID   string

	// CAPTCHA provider
	CaptchaSecret    string
	CaptchaVerifyURL string
	SiteKey          string // served to the form for widget rendering

	// Rate limiting
	RateLimit  int
	RateWindow time.Duration

	// Email copy
	ProductName string
	PrivacyURL  string
	Unsubscribe string
}

// FromConfig reads the signup configuration from process config/env.
// The provider keys are unprefixed because they are shared contract with
// the deployment environment, not internal knobs.
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("SIGNUP_")
	return Options{
		APIKey:       cfg.MayString("EMAIL_API_KEY", ""),
		EmailBaseURL: cfg.MayString("EMAIL_BASE_URL", ""),
		FromAddress:  cfg.MayString("EMAIL_FROM_ADDRESS", defaultFrom),
		AudienceID:   cfg.MayString("CONTACT_AUDIENCE_ID", ""),

		CaptchaSecret:    cfg.MayString("CAPTCHA_SECRET", ""),
		CaptchaVerifyURL: cfg.MayString("CAPTCHA_VERIFY_URL", ""),
		SiteKey:          cfg.MayString("SITE_KEY", ""),

		RateLimit:  rc.MayInt("RATE_LIMIT", 5),
		RateWindow: rc.MayDuration("RATE_WINDOW", time.Minute),

		ProductName: cfg.MayString("PRODUCT_NAME", "JoinList"),
		PrivacyURL:  cfg.MayString("PRIVACY_URL", "https://joinlist.dev/privacy"),
		Unsubscribe: cfg.MayString("UNSUBSCRIBE_ADDRESS", "unsubscribe@joinlist.dev"),
	}
}
