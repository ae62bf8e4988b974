// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"joinlist/internal/core/version"
	"joinlist/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// configuration posture, reported by readiness
	EmailConfigured    bool
	CaptchaConfigured  bool
	AudienceConfigured bool
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok disabled
}

// ReadyResponse summarizes readiness. The providers here are all external
// SaaS with no cheap probe endpoint, so readiness reports configuration
// posture rather than live connectivity.
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) ready(_ *http.Request) (any, error) {
	check := func(name string, configured bool) ReadyCheck {
		if !configured {
			return ReadyCheck{Name: name, Status: "disabled"}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	email := check("email", h.deps.EmailConfigured)
	captcha := check("captcha", h.deps.CaptchaConfigured)
	audience := check("audience", h.deps.AudienceConfigured)

	// the endpoint cannot take signups without email credentials
	overall := "ok"
	if !h.deps.EmailConfigured {
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{email, captcha, audience},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt).Seconds()),
	}, nil
}
