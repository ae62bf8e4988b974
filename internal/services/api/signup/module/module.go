// Package module wires signup into the API using modkit
package module

import (
	"context"
	"net/http"

	"joinlist/internal/adapters/captcha"
	"joinlist/internal/adapters/resend"
	"joinlist/internal/core/notify"
	"joinlist/internal/core/ratelimit"
	modkit "joinlist/internal/modkit"
	"joinlist/internal/modkit/httpkit"

	shttp "joinlist/internal/services/api/signup/http"
	ssvc "joinlist/internal/services/api/signup/service"
	"joinlist/internal/services/api/signup/domain"
)

// Module implements the signup API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ssvc.Service
}

// contactsAdapter narrows the provider client to the domain port
type contactsAdapter struct{ c *resend.Client }

func (a contactsAdapter) List(ctx context.Context, audienceID string) ([]domain.Contact, error) {
	list, err := a.c.ListContacts(ctx, audienceID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(list))
	for _, ct := range list {
		out = append(out, domain.Contact{Email: ct.Email, Subscribed: ct.Subscribed()})
	}
	return out, nil
}

func (a contactsAdapter) Create(ctx context.Context, audienceID, email string) error {
	_, err := a.c.CreateContact(ctx, audienceID, email)
	return err
}

// mailerAdapter binds the sender address onto the provider client
type mailerAdapter struct {
	c    *resend.Client
	from string
}

func (a mailerAdapter) Send(ctx context.Context, to, subject, html string) error {
	_, err := a.c.SendEmail(ctx, resend.EmailRequest{
		From:    a.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	return err
}

// New constructs the signup module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("signup"),
		modkit.WithPrefix("/"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	limiter := ratelimit.NewSlidingWindow(cfg.RateLimit, cfg.RateWindow)
	verifier := captcha.NewVerifier(captcha.VerifierOptions{
		Secret:    cfg.CaptchaSecret,
		VerifyURL: cfg.CaptchaVerifyURL,
	})
	provider := resend.New(resend.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.EmailBaseURL,
	})
	composer := notify.New(cfg.ProductName, cfg.PrivacyURL, cfg.Unsubscribe)

	svc := ssvc.New(
		limiter,
		verifier,
		contactsAdapter{c: provider},
		mailerAdapter{c: provider, from: cfg.FromAddress},
		composer,
		ssvc.Options{
			Configured: provider.Configured(),
			AudienceID: cfg.AudienceID,
		},
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		shttp.Register(r, m.svc, cfg.SiteKey)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router. The signup path
// is contract with the site's form, so the default prefix is the router root;
// a root prefix uses an inline group instead of a wildcard mount so it can
// coexist with sibling route trees.
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "" || m.prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
