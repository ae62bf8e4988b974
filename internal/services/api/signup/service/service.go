// Package service contains the signup workflow
package service

import (
	"context"
	"strings"
	"time"

	"joinlist/internal/core/mailaddr"
	"joinlist/internal/core/notify"
	"joinlist/internal/core/ratelimit"
	perr "joinlist/internal/platform/errors"
	"joinlist/internal/platform/logger"
	pnet "joinlist/internal/platform/net"
	"joinlist/internal/services/api/signup/domain"
)

// Service is the public service port
type Service interface {
	// Signup runs the whole pipeline for one submission. The client
	// identifier for rate limiting travels in ctx.
	Signup(ctx context.Context, in domain.SignupInput) (domain.SignupResult, error)
}

// Options control service behavior
type Options struct {
	// Configured gates the whole endpoint; false means the email provider
	// has no credentials and every request is refused with 503
	Configured bool

	// AudienceID scopes contact lookup/creation. Empty skips both and
	// treats every signup as new.
	AudienceID string

	// Now is a clock seam for tests; defaults to time.Now
	Now func() time.Time
}

// Svc implements the service port
type Svc struct {
	limiter  ratelimit.Limiter
	captcha  domain.CaptchaPort
	contacts domain.ContactsPort
	mailer   domain.MailerPort
	composer *notify.Composer
	opt      Options
	log      logger.Logger
}

// New constructs the service
func New(limiter ratelimit.Limiter, captcha domain.CaptchaPort, contacts domain.ContactsPort, mailer domain.MailerPort, composer *notify.Composer, opt Options) *Svc {
	if limiter == nil {
		panic("signup.Service requires a non nil Limiter")
	}
	if captcha == nil {
		panic("signup.Service requires a non nil CaptchaPort")
	}
	if composer == nil {
		panic("signup.Service requires a non nil Composer")
	}
	if opt.AudienceID != "" && contacts == nil {
		panic("signup.Service requires a ContactsPort when an audience is configured")
	}
	if opt.Configured && mailer == nil {
		panic("signup.Service requires a MailerPort when email is configured")
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Svc{
		limiter:  limiter,
		captcha:  captcha,
		contacts: contacts,
		mailer:   mailer,
		composer: composer,
		opt:      opt,
		log:      *logger.Named("signup"),
	}
}

// Signup sequences rate check, validation, challenge verification, duplicate
// lookup, contact creation, and notification. Every path terminates in either
// a result or an error that maps onto the wire contract.
func (s *Svc) Signup(ctx context.Context, in domain.SignupInput) (domain.SignupResult, error) {
	if !s.opt.Configured {
		// logged with the specific gap; the client message stays generic
		s.log.Warn().Str("missing", "EMAIL_API_KEY").Msg("signup refused, email provider not configured")
		return domain.SignupResult{}, perr.NotConfiguredf("%s", domain.MsgNotConfigured)
	}

	clientID := pnet.ClientID(ctx)
	if !s.limiter.Allow(clientID, s.opt.Now()) {
		s.log.Info().Str("client_id", clientID).Msg("signup rate limited")
		return domain.SignupResult{}, perr.TooManyRequestsf("%s", domain.MsgTooManyRequests)
	}

	if in.Email == "" {
		return domain.SignupResult{}, perr.Validationf("%s", domain.MsgEmailRequired)
	}
	if !mailaddr.Valid(in.Email) {
		return domain.SignupResult{}, perr.Validationf("%s", domain.MsgEmailInvalid)
	}

	if !s.captcha.Verify(ctx, in.Token) {
		return domain.SignupResult{}, perr.ChallengeFailedf("%s", domain.MsgCaptchaFailed)
	}

	returning := s.lookup(ctx, in.Email)

	if !returning && s.opt.AudienceID != "" {
		if err := s.contacts.Create(ctx, s.opt.AudienceID, in.Email); err != nil {
			if perr.IsCode(err, perr.ErrorCodeDuplicate) {
				// lookup raced or failed open; the contact is there, which
				// is the outcome we wanted
				s.log.Debug().Msg("contact already existed at create")
			} else {
				return domain.SignupResult{}, perr.Wrap(err, perr.ErrorCodeProvider, "create contact")
			}
		}
	}

	s.notify(ctx, in.Email, returning)

	if returning {
		return domain.SignupResult{Message: domain.MsgAlreadySubscribed, IsReturning: true}, nil
	}
	return domain.SignupResult{Message: domain.MsgWelcome, IsReturning: false}, nil
}

// lookup reports whether the email already belongs to a subscribed contact.
// Provider failures are swallowed and reported as "new": a possible duplicate
// welcome email beats blocking a real signup while the provider is degraded.
func (s *Svc) lookup(ctx context.Context, email string) bool {
	if s.opt.AudienceID == "" {
		return false
	}
	contacts, err := s.contacts.List(ctx, s.opt.AudienceID)
	if err != nil {
		s.log.Warn().Err(err).Msg("contact lookup failed, treating signup as new")
		return false
	}
	for _, c := range contacts {
		if c.Subscribed && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

// notify sends the variant matching the lookup outcome. Send failures are
// logged and dropped: the contact record is the source of truth, not the
// email delivery.
func (s *Svc) notify(ctx context.Context, email string, returning bool) {
	var msg notify.Message
	if returning {
		msg = s.composer.AlreadySubscribed(email)
	} else {
		msg = s.composer.Welcome(email)
	}
	if err := s.mailer.Send(ctx, email, msg.Subject, msg.HTML); err != nil {
		s.log.Warn().Err(err).Bool("returning", returning).Msg("notification send failed")
	}
}
