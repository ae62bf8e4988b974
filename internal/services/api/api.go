// Package api provides the HTTP API for the application
package api

import (
	"joinlist/internal/platform/config"
	"joinlist/internal/platform/logger"
	phttp "joinlist/internal/platform/net/http"

	"joinlist/internal/modkit"
	"joinlist/internal/modkit/httpkit"

	metamod "joinlist/internal/services/api/meta/module"
	signupmod "joinlist/internal/services/api/signup/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableProfiler bool
}

// Mount mounts the API service onto the given router.
// POST /signup lives at the root because its path is contract with the
// marketing site's form; the meta endpoints sit under /api/v1.
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Config,
	}

	signup := signupmod.New(deps)
	meta := metamod.New(deps)

	httpkit.MountRoot(r, httpkit.CommonStack(), func(root httpkit.Router) {
		phttp.MountProfiler(root, "/debug", opt.EnableProfiler)

		signup.MountRoutes(root)

		httpkit.MountAPIV1(root, nil, func(api httpkit.Router) {
			meta.MountRoutes(api)
		})
	})
}
