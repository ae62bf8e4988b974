// Package notify builds the transactional signup emails. Both variants render
// through one layout so the footer (unsubscribe mechanism, privacy link) cannot
// drift between them. Output is a complete HTML document with inline styling
// only, since transactional email clients routinely strip <link> tags.
package notify

import (
	"html/template"
	"net/url"
	"strings"

	"joinlist/internal/platform/logger"
)

// Kind selects the email variant
type Kind int

const (
	// KindNew greets a first-time subscriber
	KindNew Kind = iota
	// KindReturning acknowledges an address that is already on the list
	KindReturning
)

// Message is a composed subject + HTML body pair
type Message struct {
	Subject string
	HTML    string
}

// Composer renders signup notifications for one product
type Composer struct {
	Product     string
	PrivacyURL  string
	Unsubscribe string // address that handles removal requests

	log *logger.Logger
}

// New builds a Composer, falling back to sane defaults for blank fields
func New(product, privacyURL, unsubscribe string) *Composer {
	if product == "" {
		product = "joinlist"
	}
	return &Composer{
		Product:     product,
		PrivacyURL:  privacyURL,
		Unsubscribe: unsubscribe,
		log:         logger.Named("notify"),
	}
}

// Welcome composes the first-time subscriber email
// email must already have passed syntactic validation
func (c *Composer) Welcome(email string) Message {
	return c.compose(KindNew, email)
}

// AlreadySubscribed composes the returning-subscriber email
func (c *Composer) AlreadySubscribed(email string) Message {
	return c.compose(KindReturning, email)
}

var layout = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Helvetica,Arial,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f4f7;padding:24px 0;">
<tr><td align="center">
<table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:32px;">
<tr><td style="font-size:22px;font-weight:bold;color:#1a1a2e;padding-bottom:16px;">{{.Title}}</td></tr>
<tr><td style="font-size:15px;line-height:1.6;color:#3d3d4e;padding-bottom:24px;">{{.Body}}</td></tr>
<tr><td style="border-top:1px solid #e4e4ec;padding-top:16px;font-size:12px;line-height:1.5;color:#8a8a9a;">
You are receiving this because {{.Email}} was submitted to the {{.Product}} list.<br>
<a href="{{.UnsubHref}}" style="color:#8a8a9a;">Unsubscribe</a>
&middot;
<a href="{{.PrivacyURL}}" style="color:#8a8a9a;">Privacy policy</a>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>
`))

type layoutData struct {
	// Title and Body are compile-time copy, not user input, so they render
	// verbatim instead of having apostrophes entity-escaped
	Title      template.HTML
	Body       template.HTML
	Email      string
	Product    string
	UnsubHref  template.URL
	PrivacyURL string
}

// compose renders one variant through the shared layout
func (c *Composer) compose(kind Kind, email string) Message {
	var title, body, subject string
	switch kind {
	case KindReturning:
		subject = "You're already on the " + c.Product + " list"
		title = "Already subscribed"
		body = "Good news: this address is already on the list, so there is nothing more to do. " +
			"We'll keep sending updates to this inbox."
	default:
		subject = "Welcome to " + c.Product
		title = "You're on the list"
		body = "Thanks for joining. We'll let you know as soon as there is something worth reading. " +
			"No spam, and leaving takes one click."
	}

	var sb strings.Builder
	err := layout.Execute(&sb, layoutData{
		Title:      template.HTML(title),
		Body:       template.HTML(body),
		Email:      email,
		Product:    c.Product,
		UnsubHref:  template.URL(c.unsubMailto(email)),
		PrivacyURL: c.PrivacyURL,
	})
	if err != nil {
		c.log.Error().Err(err).Msg("render mail layout")
	}
	return Message{Subject: subject, HTML: sb.String()}
}

// unsubMailto builds a mailto link with a prefilled subject and body that
// identify the address to remove. The address is percent-encoded.
func (c *Composer) unsubMailto(email string) string {
	subject := pctEncode("Unsubscribe " + email)
	body := pctEncode("Please remove " + email + " from the list.")
	return "mailto:" + c.Unsubscribe + "?subject=" + subject + "&body=" + body
}

// pctEncode percent-encodes like encodeURIComponent; QueryEscape's '+' for
// space is not understood by mail clients inside mailto links
func pctEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
