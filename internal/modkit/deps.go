// Package modkit provides module wiring and core deps
package modkit

import (
	"joinlist/internal/platform/config"
	"joinlist/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
}
