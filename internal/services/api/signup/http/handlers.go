// Package http provides http transport for signup
package http

import (
	stdhttp "net/http"

	"joinlist/internal/modkit/httpkit"
	perr "joinlist/internal/platform/errors"
	"joinlist/internal/services/api/signup/domain"
	svc "joinlist/internal/services/api/signup/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, siteKey string) {
	h := &handlers{svc: s, siteKey: siteKey}
	r.Post("/signup", httpkit.Handle(h.signup))
	httpkit.Get(r, "/signup/config", h.config)
}

type handlers struct {
	svc     svc.Service
	siteKey string
}

func (h *handlers) config(_ *stdhttp.Request) (any, error) {
	return domain.WidgetConfig{SiteKey: h.siteKey}, nil
}

func (h *handlers) signup(r *stdhttp.Request) httpkit.Response {
	in, err := httpkit.Bind[domain.SignupInput](r)
	if err != nil {
		// unreadable bodies get the same message as a missing email;
		// bind internals are not part of the wire contract
		return httpkit.Error(perr.Validationf("%s", domain.MsgEmailRequired))
	}
	out, err := h.svc.Signup(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}
